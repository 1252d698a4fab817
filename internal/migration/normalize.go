package migration

import "encoding/json"

const (
	emptyJSONObjectLiteralConstant = "{}"
	jsonNullLiteralConstant        = "null"
)

// normalizeRawObject substitutes an empty object for absent or null payload
// fields the batch ingestion endpoint expects to be objects.
func normalizeRawObject(rawValue json.RawMessage) json.RawMessage {
	if len(rawValue) == 0 || string(rawValue) == jsonNullLiteralConstant {
		return json.RawMessage(emptyJSONObjectLiteralConstant)
	}
	return rawValue
}

func normalizeRawList(rawValues []json.RawMessage) []json.RawMessage {
	if rawValues == nil {
		return []json.RawMessage{}
	}
	return rawValues
}

func normalizeTagList(tagValues []string) []string {
	if tagValues == nil {
		return []string{}
	}
	return tagValues
}
