package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/AethraData/aiklyra"
)

// renderTransitionMatrix lays out the transition matrix with one labelled
// row and column per intent cluster. Row label i and column label j frame
// the probability of moving from cluster i to cluster j.
func renderTransitionMatrix(result *aiklyra.AnalysisResponse) string {
	clusters := make([]int, 0, len(result.IntentByCluster))
	for id := range result.IntentByCluster {
		clusters = append(clusters, id)
	}
	sort.Ints(clusters)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(clusters)+1)
	header = append(header, "from \\ to")
	for _, id := range clusters {
		header = append(header, clusterLabel(result, id))
	}
	tw.AppendHeader(header)

	for i, row := range result.TransitionMatrix {
		r := make(table.Row, 0, len(row)+1)
		r = append(r, clusterLabel(result, i))
		for _, p := range row {
			r = append(r, fmt.Sprintf("%.3f", p))
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(clusters)+1)
	configs = append(configs, table.ColumnConfig{Number: 1, Align: text.AlignLeft})
	for i := range clusters {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func clusterLabel(result *aiklyra.AnalysisResponse, id int) string {
	if label, ok := result.IntentByCluster[id]; ok {
		return fmt.Sprintf("%d:%s", id, label)
	}
	return fmt.Sprintf("%d", id)
}
