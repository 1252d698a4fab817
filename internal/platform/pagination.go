package platform

import "context"

// DefaultPageSize is the page size the platform serves for offset-paginated
// list endpoints.
const DefaultPageSize = 100

// PageFetcher returns one page of items starting at the supplied offset.
type PageFetcher[Item any] func(requestContext context.Context, offset int) ([]Item, error)

// CollectAllPages drains an offset-paginated endpoint into one ordered
// slice. Fetching stops on the first page shorter than pageSize; when the
// total count is an exact multiple of the page size this costs one trailing
// empty request, which cannot be avoided without a total count from the
// platform.
func CollectAllPages[Item any](requestContext context.Context, pageSize int, fetchPage PageFetcher[Item]) ([]Item, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var collectedItems []Item
	for {
		pageItems, fetchError := fetchPage(requestContext, len(collectedItems))
		if fetchError != nil {
			return nil, fetchError
		}

		collectedItems = append(collectedItems, pageItems...)
		if len(pageItems) < pageSize {
			return collectedItems, nil
		}
	}
}
