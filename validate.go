package aiklyra

import "reflect"

// validateRequest applies the local checks that must pass before any request
// is sent: the conversation payload must be map-shaped, cluster bounds must
// be positive when provided, and min must not exceed max.
func validateRequest(conversationData any, minClusters, maxClusters *int) error {
	if conversationData == nil || reflect.ValueOf(conversationData).Kind() != reflect.Map {
		return &ValidationError{Message: "conversation_data must be a map of sessions to turns."}
	}
	if (minClusters != nil && *minClusters <= 0) || (maxClusters != nil && *maxClusters <= 0) {
		return &ValidationError{Message: "min_clusters and max_clusters must be positive integers."}
	}
	if minClusters != nil && maxClusters != nil && *minClusters > *maxClusters {
		return &ValidationError{Message: "max_clusters must be greater than or equal to min_clusters."}
	}
	return nil
}
