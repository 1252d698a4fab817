package platform

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSliceFetcher(storedItems []string, pageSize int, requestedOffsets *[]int) PageFetcher[string] {
	return func(requestContext context.Context, offset int) ([]string, error) {
		*requestedOffsets = append(*requestedOffsets, offset)
		if offset >= len(storedItems) {
			return nil, nil
		}

		pageEnd := offset + pageSize
		if pageEnd > len(storedItems) {
			pageEnd = len(storedItems)
		}

		return storedItems[offset:pageEnd], nil
	}
}

func TestCollectAllPagesGathersEveryItem(testInstance *testing.T) {
	testInstance.Parallel()

	storedItems := make([]string, 0, 250)
	for itemIndex := 0; itemIndex < 250; itemIndex++ {
		storedItems = append(storedItems, fmt.Sprintf("item-%d", itemIndex))
	}

	var requestedOffsets []int
	collectedItems, collectionError := CollectAllPages(context.Background(), DefaultPageSize, buildSliceFetcher(storedItems, DefaultPageSize, &requestedOffsets))
	require.NoError(testInstance, collectionError)
	require.Equal(testInstance, storedItems, collectedItems)
	require.Equal(testInstance, []int{0, 100, 200}, requestedOffsets)
}

func TestCollectAllPagesIssuesTrailingRequestOnExactMultiple(testInstance *testing.T) {
	testInstance.Parallel()

	storedItems := make([]string, 200)
	for itemIndex := range storedItems {
		storedItems[itemIndex] = fmt.Sprintf("item-%d", itemIndex)
	}

	var requestedOffsets []int
	collectedItems, collectionError := CollectAllPages(context.Background(), DefaultPageSize, buildSliceFetcher(storedItems, DefaultPageSize, &requestedOffsets))
	require.NoError(testInstance, collectionError)
	require.Len(testInstance, collectedItems, 200)
	require.Equal(testInstance, []int{0, 100, 200}, requestedOffsets)
}

func TestCollectAllPagesStopsOnShortFirstPage(testInstance *testing.T) {
	testInstance.Parallel()

	var requestedOffsets []int
	collectedItems, collectionError := CollectAllPages(context.Background(), DefaultPageSize, buildSliceFetcher([]string{"only"}, DefaultPageSize, &requestedOffsets))
	require.NoError(testInstance, collectionError)
	require.Equal(testInstance, []string{"only"}, collectedItems)
	require.Equal(testInstance, []int{0}, requestedOffsets)
}

func TestCollectAllPagesPropagatesFetchErrors(testInstance *testing.T) {
	testInstance.Parallel()

	fetchFailure := errors.New("listing failed")
	_, collectionError := CollectAllPages(context.Background(), DefaultPageSize, func(requestContext context.Context, offset int) ([]string, error) {
		return nil, fetchFailure
	})
	require.ErrorIs(testInstance, collectionError, fetchFailure)
}
