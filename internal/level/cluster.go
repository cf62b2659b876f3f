package level

import "github.com/vovakirdan/tui-hive/internal/hexagon"

// Cluster groups blocks that are drawn joined together. Links are fixed at
// load time between blocks of the cluster that started on adjacent tiles;
// renderers draw each link between the blocks' current positions.
type Cluster struct {
	Index  int // 1-based, as referenced by entity data
	Blocks []*Entity
	Links  [][2]*Entity
}

func buildClusters(count int, entities []*Entity, columns, rows int) []Cluster {
	if count == 0 {
		return nil
	}

	clusters := make([]Cluster, count)
	for i := range clusters {
		clusters[i].Index = i + 1
	}

	for _, e := range entities {
		if e.kind != EntityBlock || e.cluster == 0 {
			continue
		}
		c := &clusters[e.cluster-1]
		for _, n := range hexagon.Neighbors(e.position, columns, rows) {
			for _, other := range c.Blocks {
				if other.position == n {
					c.Links = append(c.Links, [2]*Entity{other, e})
					break
				}
			}
		}
		c.Blocks = append(c.Blocks, e)
	}

	return clusters
}

// Clusters returns the level's block clusters.
func (l *Level) Clusters() []Cluster {
	return l.clusters
}
