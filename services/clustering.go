package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// MinClusterTransactions is the hard precondition for segmentation.
const MinClusterTransactions = 3

// ClusteringService segments a transaction list into labeled spending
// personas. Every analysis is computed fresh from the request; nothing is
// shared across calls.
type ClusteringService struct {
	defaultClusters int
}

func NewClusteringService(defaultClusters int) *ClusteringService {
	if defaultClusters < 2 {
		defaultClusters = 5
	}
	return &ClusteringService{defaultClusters: defaultClusters}
}

// Analyze runs the full segmentation pipeline: features, standardization,
// k-means, per-cluster statistics and persona assignment.
func (s *ClusteringService) Analyze(req models.ClusterRequest) (*models.ClusterResponse, error) {
	if len(req.Transactions) < MinClusterTransactions {
		return nil, models.Validationf("need at least %d transactions for clustering", MinClusterTransactions)
	}
	rows, err := parseRows(req.Transactions)
	if err != nil {
		return nil, err
	}

	k := req.NumClusters
	if k <= 0 {
		k = s.defaultClusters
	}
	// Never hand the algorithm more clusters than it can distinctly populate.
	if k > len(rows)-1 {
		k = len(rows) - 1
		if k < 2 {
			k = 2
		}
	}

	scaled := utils.StandardizeColumns(clusteringFeatures(rows))
	result := runKMeans(scaled, k, rand.New(rand.NewSource(clusteringSeed)))

	// Raw algorithm labels are remapped to a contiguous 0..m-1 range in
	// ascending label order, so cluster IDs stay stable across calls.
	members := make(map[int][]txRow)
	for i, label := range result.labels {
		members[label] = append(members[label], rows[i])
	}
	rawLabels := make([]int, 0, len(members))
	for label := range members {
		rawLabels = append(rawLabels, label)
	}
	sort.Ints(rawLabels)

	clusters := make([]models.ClusterInfo, 0, len(rawLabels))
	largest := 0
	for id, raw := range rawLabels {
		clusterRows := members[raw]
		if len(clusterRows) > largest {
			largest = len(clusterRows)
		}
		stats := computeClusterStats(clusterRows)
		label, description := assignPersona(stats)

		txs := make([]models.ClusterTransaction, len(clusterRows))
		for i, r := range clusterRows {
			txs[i] = models.ClusterTransaction{
				Index:    r.index,
				Amount:   r.amount,
				Category: r.category,
				Date:     req.Transactions[r.index].Date,
			}
		}
		clusters = append(clusters, models.ClusterInfo{
			ID:            id,
			Label:         label,
			Description:   description,
			Count:         stats.count,
			AvgAmount:     stats.avgAmount,
			TopCategories: stats.topCategories,
			Transactions:  txs,
		})
	}

	importance := featureImportance(result.centroids)
	summary := fmt.Sprintf(
		"Identified %d spending pattern clusters. Largest cluster: %d transactions. "+
			"Top influencing factors: %s",
		k, largest, strings.Join(topFactors(importance, 3), ", "))

	return &models.ClusterResponse{
		UserID:            req.UserID,
		Clusters:          clusters,
		FeatureImportance: importance,
		Summary:           summary,
	}, nil
}

// featureImportance summarizes which standardized features most separate
// the clusters: the mean absolute centroid coordinate per column.
func featureImportance(centroids [][]float64) map[string]float64 {
	importance := make(map[string]float64, len(clusteringFeatureNames))
	for j, name := range clusteringFeatureNames {
		var sum float64
		for _, centroid := range centroids {
			sum += math.Abs(centroid[j])
		}
		importance[name] = sum / float64(len(centroids))
	}
	return importance
}

// topFactors returns the n highest-importance feature names, descending,
// with name order breaking ties deterministically.
func topFactors(importance map[string]float64, n int) []string {
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if importance[names[i]] != importance[names[j]] {
			return importance[names[i]] > importance[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
