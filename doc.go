// Package aiklyra is a Go client for the Aiklyra conversation-flow-analysis API.
//
// The client sends conversation transcripts to the analysis service and returns
// a typed [AnalysisResponse]: a transition matrix between discovered intent
// clusters and a human-readable label per cluster.
//
//	client := aiklyra.NewClient("your-api-key", "https://api.aiklyra.com")
//
//	data := aiklyra.ConversationData{
//		"session_1": {
//			{Role: "user", Content: "Hello"},
//			{Role: "assistant", Content: "Hi there!"},
//		},
//	}
//
//	result, err := client.Analyse(context.Background(), data,
//		aiklyra.WithMinClusters(2),
//		aiklyra.WithMaxClusters(10),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.IntentByCluster[0])
//
// # Error Handling
//
// Failures surface as distinct error types so callers can branch on the
// failure category instead of raw status codes:
//
//   - [ValidationError]: the input was rejected locally; no request was sent.
//   - [InvalidAPIKeyError]: the service rejected the bearer token.
//   - [InsufficientCreditsError]: the account has no credits left.
//   - [AnalysisError]: the service answered 200 but the body is missing
//     required fields.
//   - [APIError]: any other non-success status; its message embeds the
//     literal status code.
//
// Use errors.As to detect a category:
//
//	var apiErr *aiklyra.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println("status:", apiErr.StatusCode)
//	}
package aiklyra
