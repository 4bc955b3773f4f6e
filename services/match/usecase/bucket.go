package usecase

import (
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

// bucketIndex groups item indices by coarse bucket of k x k cells
type bucketIndex struct {
	mesh    *utils.Mesh
	k       int
	buckets map[models.Cell][]int
	home    map[int]models.Cell
}

func newBucketIndex(mesh *utils.Mesh, k int) *bucketIndex {
	return &bucketIndex{
		mesh:    mesh,
		k:       k,
		buckets: make(map[models.Cell][]int),
		home:    make(map[int]models.Cell),
	}
}

// bucketOf returns the bucket containing l
func (b *bucketIndex) bucketOf(l models.Location) models.Cell {
	c := b.mesh.LonLatToCell(l)
	return models.Cell{X: c.X / b.k, Y: c.Y / b.k}
}

func (b *bucketIndex) add(i int, l models.Location) {
	bucket := b.bucketOf(l)
	b.buckets[bucket] = append(b.buckets[bucket], i)
	b.home[i] = bucket
}

func (b *bucketIndex) remove(i int) {
	bucket, ok := b.home[i]
	if !ok {
		return
	}
	delete(b.home, i)
	items := b.buckets[bucket]
	for j, v := range items {
		if v == i {
			b.buckets[bucket] = append(items[:j:j], items[j+1:]...)
			return
		}
	}
}

func (b *bucketIndex) at(bucket models.Cell) []int {
	return b.buckets[bucket]
}

// ring returns the items of the buckets at Chebyshev distance r from center
func (b *bucketIndex) ring(center models.Cell, r int) []int {
	if r == 0 {
		return append([]int(nil), b.at(center)...)
	}
	var out []int
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if abs(dx) != r && abs(dy) != r {
				continue
			}
			out = append(out, b.at(models.Cell{X: center.X + dx, Y: center.Y + dy})...)
		}
	}
	return out
}

// size returns the number of buckets along each axis
func (b *bucketIndex) size() (int, int) {
	return (b.mesh.Width + b.k - 1) / b.k, (b.mesh.Height + b.k - 1) / b.k
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
