package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	promptCommitPathTemplateConstant       = "/commits/%s/%s/%s"
	promptCommitCreatePathTemplateConstant = "/commits/%s/%s"
	promptReposPathConstant                = "/repos"
	includeModelQueryParameterConstant     = "include_model"
	includeModelQueryValueConstant         = "true"
	latestCommitReferenceConstant          = "latest"
	promptIdentifierSeparatorConstant      = "/"
	promptCommitSeparatorConstant          = ":"
	promptIdentifierInvalidTemplateCons    = "prompt identifier %q must take the form owner/name or owner/name:commit"
)

// PromptIdentifier addresses one prompt, optionally pinned to a commit.
type PromptIdentifier struct {
	Owner  string
	Name   string
	Commit string
}

// ParsePromptIdentifier interprets owner/name and owner/name:commit forms.
// A missing commit resolves to the latest one.
func ParsePromptIdentifier(identifierValue string) (PromptIdentifier, error) {
	trimmedValue := strings.TrimSpace(identifierValue)
	nameComponents := strings.SplitN(trimmedValue, promptIdentifierSeparatorConstant, 2)
	if len(nameComponents) != 2 || len(nameComponents[0]) == 0 || len(nameComponents[1]) == 0 {
		return PromptIdentifier{}, fmt.Errorf(promptIdentifierInvalidTemplateCons, identifierValue)
	}

	commitReference := latestCommitReferenceConstant
	promptName := nameComponents[1]
	if separatorIndex := strings.Index(promptName, promptCommitSeparatorConstant); separatorIndex >= 0 {
		commitReference = promptName[separatorIndex+1:]
		promptName = promptName[:separatorIndex]
		if len(promptName) == 0 || len(commitReference) == 0 {
			return PromptIdentifier{}, fmt.Errorf(promptIdentifierInvalidTemplateCons, identifierValue)
		}
	}

	return PromptIdentifier{Owner: nameComponents[0], Name: promptName, Commit: commitReference}, nil
}

type promptRepoCreateRequest struct {
	RepoHandle string `json:"repo_handle"`
	IsPublic   bool   `json:"is_public"`
}

type promptCommitCreateRequest struct {
	Manifest json.RawMessage `json:"manifest"`
}

// PullPromptCommit fetches a versioned prompt manifest together with its
// model configuration.
func (client *Client) PullPromptCommit(requestContext context.Context, identifier PromptIdentifier) (PromptCommit, error) {
	queryValues := url.Values{}
	queryValues.Set(includeModelQueryParameterConstant, includeModelQueryValueConstant)

	var promptCommit PromptCommit
	requestError := client.sendJSONRequest(
		requestContext,
		http.MethodGet,
		joinPath(promptCommitPathTemplateConstant, identifier.Owner, identifier.Name, identifier.Commit),
		queryValues,
		nil,
		&promptCommit,
	)
	return promptCommit, requestError
}

// PushPrompt stores the manifest under the identifier, creating the prompt
// repository when it does not exist yet. An already-existing repository is
// not an error.
func (client *Client) PushPrompt(requestContext context.Context, identifier PromptIdentifier, manifest json.RawMessage) error {
	repoRequest := promptRepoCreateRequest{RepoHandle: identifier.Name}
	repoError := client.sendJSONRequest(requestContext, http.MethodPost, promptReposPathConstant, nil, repoRequest, nil)
	if repoError != nil && !isConflict(repoError) {
		return repoError
	}

	commitRequest := promptCommitCreateRequest{Manifest: manifest}
	return client.sendJSONRequest(
		requestContext,
		http.MethodPost,
		joinPath(promptCommitCreatePathTemplateConstant, identifier.Owner, identifier.Name),
		nil,
		commitRequest,
		nil,
	)
}

func isConflict(candidateError error) bool {
	var statusError StatusError
	if errors.As(candidateError, &statusError) {
		return statusError.StatusCode == http.StatusConflict
	}
	return false
}
