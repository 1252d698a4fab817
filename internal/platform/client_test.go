package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAPIKeyConstant            = "test-api-key"
	testDatasetNameConstant       = "regression-suite"
	notFoundDetailMessageConstant = "Dataset not found"
)

func newTestClient(testInstance *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	testInstance.Helper()

	server := httptest.NewServer(handler)
	testInstance.Cleanup(server.Close)

	client, clientError := NewClient(zap.NewNop(), server.Client(), ClientConfiguration{
		BaseURL: server.URL,
		APIKey:  testAPIKeyConstant,
	})
	require.NoError(testInstance, clientError)

	return client, server
}

func TestNewClientRequiresAPIKey(testInstance *testing.T) {
	testInstance.Parallel()

	_, clientError := NewClient(zap.NewNop(), nil, ClientConfiguration{BaseURL: DefaultBaseURL})
	require.Error(testInstance, clientError)
}

func TestClientSendsAPIKeyHeader(testInstance *testing.T) {
	testInstance.Parallel()

	datasetID := uuid.NewString()
	var observedAPIKey string
	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		observedAPIKey = request.Header.Get("X-API-Key")
		responseWriter.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(responseWriter, `{"id":%q,"name":%q}`, datasetID, testDatasetNameConstant)
	}))

	dataset, requestError := client.GetDataset(context.Background(), datasetID)
	require.NoError(testInstance, requestError)
	require.Equal(testInstance, testAPIKeyConstant, observedAPIKey)
	require.Equal(testInstance, datasetID, dataset.ID)
	require.Equal(testInstance, testDatasetNameConstant, dataset.Name)
}

func TestClientDecodesStatusErrorDetail(testInstance *testing.T) {
	testInstance.Parallel()

	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		responseWriter.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(responseWriter, `{"detail":%q}`, notFoundDetailMessageConstant)
	}))

	_, requestError := client.GetDataset(context.Background(), uuid.NewString())
	require.Error(testInstance, requestError)

	var statusError StatusError
	require.True(testInstance, errors.As(requestError, &statusError))
	require.Equal(testInstance, http.StatusNotFound, statusError.StatusCode)
	require.Equal(testInstance, notFoundDetailMessageConstant, statusError.Detail)
	require.True(testInstance, IsNotFound(requestError))
}

func TestListExamplesSendsPaginationParameters(testInstance *testing.T) {
	testInstance.Parallel()

	datasetID := uuid.NewString()
	var observedQuery map[string]string
	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		observedQuery = map[string]string{
			"dataset": request.URL.Query().Get("dataset"),
			"offset":  request.URL.Query().Get("offset"),
			"limit":   request.URL.Query().Get("limit"),
		}
		responseWriter.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(responseWriter, "[]")
	}))

	examples, requestError := client.ListExamples(context.Background(), datasetID, 200)
	require.NoError(testInstance, requestError)
	require.Empty(testInstance, examples)
	require.Equal(testInstance, datasetID, observedQuery["dataset"])
	require.Equal(testInstance, "200", observedQuery["offset"])
	require.Equal(testInstance, "100", observedQuery["limit"])
}

func TestBulkCreateExamplesPreservesSubmissionOrder(testInstance *testing.T) {
	testInstance.Parallel()

	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		requestBody, readError := io.ReadAll(request.Body)
		require.NoError(testInstance, readError)

		var submittedExamples []ExampleCreateRequest
		require.NoError(testInstance, json.Unmarshal(requestBody, &submittedExamples))

		createdExamples := make([]Example, 0, len(submittedExamples))
		for exampleIndex, submittedExample := range submittedExamples {
			createdExamples = append(createdExamples, Example{
				ID:     fmt.Sprintf("created-%d", exampleIndex),
				Inputs: submittedExample.Inputs,
			})
		}

		responseWriter.Header().Set("Content-Type", "application/json")
		require.NoError(testInstance, json.NewEncoder(responseWriter).Encode(createdExamples))
	}))

	creationRequests := []ExampleCreateRequest{
		{DatasetID: "d", Inputs: json.RawMessage(`{"question":"first"}`), Split: "base"},
		{DatasetID: "d", Inputs: json.RawMessage(`{"question":"second"}`), Split: "base"},
	}

	createdExamples, requestError := client.BulkCreateExamples(context.Background(), creationRequests)
	require.NoError(testInstance, requestError)
	require.Len(testInstance, createdExamples, 2)
	require.Equal(testInstance, "created-0", createdExamples[0].ID)
	require.Equal(testInstance, "created-1", createdExamples[1].ID)
	require.JSONEq(testInstance, `{"question":"first"}`, string(createdExamples[0].Inputs))
}

func TestQueryRunsForwardsCursor(testInstance *testing.T) {
	testInstance.Parallel()

	var observedRequest RunQueryRequest
	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		require.NoError(testInstance, json.NewDecoder(request.Body).Decode(&observedRequest))
		responseWriter.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(responseWriter, `{"runs":[],"cursors":{"next":null}}`)
	}))

	queryRequest := RunQueryRequest{
		SessionIDs:     []string{uuid.NewString()},
		Cursor:         "page-two",
		SkipPagination: false,
	}

	queryResponse, requestError := client.QueryRuns(context.Background(), queryRequest)
	require.NoError(testInstance, requestError)
	require.Nil(testInstance, queryResponse.Cursors.Next)
	require.Equal(testInstance, queryRequest.SessionIDs, observedRequest.SessionIDs)
	require.Equal(testInstance, "page-two", observedRequest.Cursor)
}

func TestPushPromptToleratesExistingRepository(testInstance *testing.T) {
	testInstance.Parallel()

	manifest := json.RawMessage(`{"kind":"chat","messages":[]}`)
	var observedCommitBody []byte
	client, _ := newTestClient(testInstance, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		if request.URL.Path == "/repos" {
			responseWriter.WriteHeader(http.StatusConflict)
			_, _ = fmt.Fprint(responseWriter, `{"detail":"Repo already exists"}`)
			return
		}

		requestBody, readError := io.ReadAll(request.Body)
		require.NoError(testInstance, readError)
		observedCommitBody = requestBody
		_, _ = fmt.Fprint(responseWriter, `{}`)
	}))

	identifier, parseError := ParsePromptIdentifier("acme/support-triage")
	require.NoError(testInstance, parseError)

	pushError := client.PushPrompt(context.Background(), identifier, manifest)
	require.NoError(testInstance, pushError)
	require.JSONEq(testInstance, `{"manifest":{"kind":"chat","messages":[]}}`, string(observedCommitBody))
}
