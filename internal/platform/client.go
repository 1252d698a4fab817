package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL targets the hosted platform's public API surface.
	DefaultBaseURL = "https://api.smith.langchain.com/api/v1"

	apiKeyHeaderNameConstant              = "X-API-Key"
	contentTypeHeaderNameConstant         = "Content-Type"
	acceptHeaderNameConstant              = "Accept"
	jsonContentTypeConstant               = "application/json"
	apiKeyMissingMessageConstant          = "platform API key must be provided"
	requestCreationErrorTemplateConstant  = "unable to create %s request for %s: %w"
	requestExecutionErrorTemplateConstant = "request %s %s failed: %w"
	requestBodyEncodeErrorTemplate        = "unable to encode request body for %s: %w"
	responseBodyReadErrorTemplateConstant = "unable to read response body for %s: %w"
	responseDecodeErrorTemplateConstant   = "unable to decode response body for %s: %w"
	statusErrorTemplateConstant           = "platform responded with status %d: %s"
	requestFailedLogMessageConstant       = "Platform request failed"
	logFieldMethodConstant                = "method"
	logFieldURLConstant                   = "url"
	logFieldStatusCodeConstant            = "status_code"
)

// HTTPClient abstracts HTTP execution for testability.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// ClientConfiguration describes how to reach one platform instance.
type ClientConfiguration struct {
	BaseURL string
	APIKey  string
}

// Client issues authenticated JSON requests against one platform instance.
type Client struct {
	logger     *zap.Logger
	httpClient HTTPClient
	baseURL    string
	apiKey     string
}

// StatusError captures a non-success platform response.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error renders the status code and platform-provided detail message.
func (statusError StatusError) Error() string {
	return fmt.Sprintf(statusErrorTemplateConstant, statusError.StatusCode, statusError.Detail)
}

// IsNotFound reports whether the error represents a missing platform resource.
func IsNotFound(candidateError error) bool {
	var statusError StatusError
	if errors.As(candidateError, &statusError) {
		return statusError.StatusCode == http.StatusNotFound
	}
	return false
}

var errAPIKeyMissing = errors.New(apiKeyMissingMessageConstant)

// NewClient constructs a platform client bound to one instance's credentials.
func NewClient(logger *zap.Logger, httpClient HTTPClient, configuration ClientConfiguration) (*Client, error) {
	if len(strings.TrimSpace(configuration.APIKey)) == 0 {
		return nil, errAPIKeyMissing
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	resolvedHTTPClient := httpClient
	if resolvedHTTPClient == nil {
		resolvedHTTPClient = http.DefaultClient
	}

	resolvedBaseURL := strings.TrimRight(strings.TrimSpace(configuration.BaseURL), "/")
	if len(resolvedBaseURL) == 0 {
		resolvedBaseURL = DefaultBaseURL
	}

	client := &Client{
		logger:     resolvedLogger,
		httpClient: resolvedHTTPClient,
		baseURL:    resolvedBaseURL,
		apiKey:     configuration.APIKey,
	}

	return client, nil
}

type errorResponseBody struct {
	Detail json.RawMessage `json:"detail"`
}

// sendJSONRequest performs one round trip, decoding success payloads into
// responseTarget and non-success payloads into a StatusError.
func (client *Client) sendJSONRequest(requestContext context.Context, method string, path string, queryValues url.Values, requestBody any, responseTarget any) error {
	requestURL := client.baseURL + path
	if len(queryValues) > 0 {
		requestURL = requestURL + "?" + queryValues.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encodedBody, encodeError := json.Marshal(requestBody)
		if encodeError != nil {
			return fmt.Errorf(requestBodyEncodeErrorTemplate, requestURL, encodeError)
		}
		bodyReader = bytes.NewReader(encodedBody)
	}

	request, requestError := http.NewRequestWithContext(requestContext, method, requestURL, bodyReader)
	if requestError != nil {
		return fmt.Errorf(requestCreationErrorTemplateConstant, method, requestURL, requestError)
	}

	request.Header.Set(apiKeyHeaderNameConstant, client.apiKey)
	request.Header.Set(acceptHeaderNameConstant, jsonContentTypeConstant)
	if requestBody != nil {
		request.Header.Set(contentTypeHeaderNameConstant, jsonContentTypeConstant)
	}

	response, executionError := client.httpClient.Do(request)
	if executionError != nil {
		return fmt.Errorf(requestExecutionErrorTemplateConstant, method, requestURL, executionError)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	responseBody, readError := io.ReadAll(response.Body)
	if readError != nil {
		return fmt.Errorf(responseBodyReadErrorTemplateConstant, requestURL, readError)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		client.logger.Debug(
			requestFailedLogMessageConstant,
			zap.String(logFieldMethodConstant, method),
			zap.String(logFieldURLConstant, requestURL),
			zap.Int(logFieldStatusCodeConstant, response.StatusCode),
		)
		return StatusError{
			StatusCode: response.StatusCode,
			Detail:     extractErrorDetail(responseBody),
		}
	}

	if responseTarget == nil {
		return nil
	}

	if decodeError := json.Unmarshal(responseBody, responseTarget); decodeError != nil {
		return fmt.Errorf(responseDecodeErrorTemplateConstant, requestURL, decodeError)
	}

	return nil
}

// joinPath renders a path template with URL-escaped path arguments.
func joinPath(pathTemplate string, pathArguments ...string) string {
	escapedArguments := make([]any, len(pathArguments))
	for argumentIndex, pathArgument := range pathArguments {
		escapedArguments[argumentIndex] = url.PathEscape(pathArgument)
	}
	return fmt.Sprintf(pathTemplate, escapedArguments...)
}

func extractErrorDetail(responseBody []byte) string {
	var parsedBody errorResponseBody
	if unmarshalError := json.Unmarshal(responseBody, &parsedBody); unmarshalError == nil && len(parsedBody.Detail) > 0 {
		var detailText string
		if textError := json.Unmarshal(parsedBody.Detail, &detailText); textError == nil {
			return detailText
		}
		return string(parsedBody.Detail)
	}
	return strings.TrimSpace(string(responseBody))
}
