package platform

import (
	"context"
	"net/http"
	"net/url"
)

const (
	runsRulesPathConstant           = "/runs/rules"
	sessionIDQueryParameterConstant = "session_id"
)

// ListRules returns every automation rule attached to the tracing project.
// The endpoint is not paginated; rule lists stay small in practice.
func (client *Client) ListRules(requestContext context.Context, sessionID string) ([]Rule, error) {
	queryValues := url.Values{}
	queryValues.Set(sessionIDQueryParameterConstant, sessionID)

	var rules []Rule
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, runsRulesPathConstant, queryValues, nil, &rules)
	return rules, requestError
}

// CreateRule creates an automation rule and returns the stored resource.
func (client *Client) CreateRule(requestContext context.Context, creationRequest RuleCreateRequest) (Rule, error) {
	var rule Rule
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, runsRulesPathConstant, nil, creationRequest, &rule)
	return rule, requestError
}
