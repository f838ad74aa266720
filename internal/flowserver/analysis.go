package flowserver

import (
	"sort"

	"github.com/AethraData/aiklyra"
)

// analyze computes a deliberately simple conversation-flow analysis so the
// reference server produces well-formed responses: each distinct role becomes
// a cluster labelled by the role name, and the transition matrix is the
// row-normalized count of consecutive-turn transitions across all sessions.
//
// Sessions are visited in sorted key order so cluster ids are deterministic
// for a given payload. When minClusters asks for more clusters than there
// are roles, the matrix is padded with self-looping "unlabeled" clusters.
func analyze(data map[string][]aiklyra.Turn, minClusters *int) *aiklyra.AnalysisResponse {
	sessions := make([]string, 0, len(data))
	for id := range data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)

	clusterByRole := map[string]int{}
	labels := []string{}
	clusterOf := func(role string) int {
		id, ok := clusterByRole[role]
		if !ok {
			id = len(labels)
			clusterByRole[role] = id
			labels = append(labels, role)
		}
		return id
	}

	type transition struct{ from, to int }
	counts := map[transition]int{}
	for _, id := range sessions {
		turns := data[id]
		for i, turn := range turns {
			from := clusterOf(turn.Role)
			if i+1 < len(turns) {
				to := clusterOf(turns[i+1].Role)
				counts[transition{from, to}]++
			}
		}
	}

	n := len(labels)
	if minClusters != nil && n < *minClusters {
		n = *minClusters
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for tr, c := range counts {
		matrix[tr.from][tr.to] = float64(c)
	}
	for i, row := range matrix {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			// Cluster never transitions; keep rows stochastic.
			row[i] = 1
			continue
		}
		for j := range row {
			row[j] /= sum
		}
	}

	intents := make(map[int]string, n)
	for i := 0; i < n; i++ {
		if i < len(labels) {
			intents[i] = labels[i]
		} else {
			intents[i] = "unlabeled"
		}
	}

	return &aiklyra.AnalysisResponse{
		TransitionMatrix: matrix,
		IntentByCluster:  intents,
	}
}
