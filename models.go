package aiklyra

// Turn is a single message in a conversation.
type Turn struct {
	// Role is the speaker, e.g. "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ConversationData maps a session identifier to its ordered turns. Analyse
// also accepts any other map-shaped value; this alias is the typed
// convenience form.
type ConversationData = map[string][]Turn

// AnalysisRequest is the payload sent to the analysis service.
type AnalysisRequest struct {
	// ConversationData maps session ids to ordered turns.
	ConversationData any `json:"conversation_data"`

	// MinClusters is the optional lower bound on discovered clusters.
	MinClusters *int `json:"min_clusters,omitempty"`

	// MaxClusters is the optional upper bound on discovered clusters.
	MaxClusters *int `json:"max_clusters,omitempty"`
}

// AnalysisResponse is the typed result of a successful analysis.
type AnalysisResponse struct {
	// TransitionMatrix is a square matrix where entry (i, j) is the
	// estimated probability of moving from cluster i to cluster j.
	TransitionMatrix [][]float64 `json:"transition_matrix"`

	// IntentByCluster maps each cluster id to its intent label.
	IntentByCluster map[int]string `json:"intent_by_cluster"`
}
