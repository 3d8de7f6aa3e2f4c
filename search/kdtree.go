package search

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	cm "github.com/gasparian/knn-search-go/common"
	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/options"
)

// KDTreeName used in the search strategy specification string
const KDTreeName = "kdtree"

const defaultLeafSize = 40

type kdNode struct {
	left      *kdNode
	right     *kdNode
	splitDim  int
	splitVal  float64
	instances []dataset.Instance // filled only in leaves
}

// KDTree is a kd-tree backed nearest neighbors search;
// points are kept in leaves of the configured max size
type KDTree struct {
	root     *kdNode
	dims     int
	leafSize int
}

// NewKDTree creates an unfitted kd-tree search with the default leaf size
func NewKDTree() *KDTree {
	return &KDTree{leafSize: defaultLeafSize}
}

// Fit builds the tree over the training data
func (t *KDTree) Fit(ds *dataset.Dataset) error {
	if err := ds.CheckNotEmpty(); err != nil {
		return err
	}
	t.dims = ds.NumAttrs
	instances := make([]dataset.Instance, len(ds.Instances))
	copy(instances, ds.Instances)
	t.root = t.build(instances, 0)
	return nil
}

func (t *KDTree) build(instances []dataset.Instance, depth int) *kdNode {
	if len(instances) <= t.leafSize {
		return &kdNode{instances: instances}
	}
	dim := depth % t.dims
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Vec[dim] < instances[j].Vec[dim]
	})
	mid := len(instances) / 2
	return &kdNode{
		splitDim: dim,
		splitVal: instances[mid].Vec[dim],
		left:     t.build(instances[:mid], depth+1),
		right:    t.build(instances[mid:], depth+1),
	}
}

// Update appends the instance to its leaf; the tree is not rebalanced
func (t *KDTree) Update(inst dataset.Instance) error {
	if t.root == nil {
		return notFittedErr
	}
	node := t.root
	for node.instances == nil {
		if inst.Vec[node.splitDim] < node.splitVal {
			node = node.left
		} else {
			node = node.right
		}
	}
	node.instances = append(node.instances, inst)
	return nil
}

// KNearest traverses the tree pruning branches that cannot contain
// a closer point than the current k-th best candidate
func (t *KDTree) KNearest(target dataset.Instance, k int) ([]Neighbor, error) {
	if t.root == nil {
		return nil, notFittedErr
	}
	if k <= 0 {
		return nil, kOutOfRangeErr
	}
	best := newCandidates(k)
	t.traverse(t.root, target, best)
	return best.items, nil
}

func (t *KDTree) traverse(node *kdNode, target dataset.Instance, best *candidates) {
	if node.instances != nil {
		for _, inst := range node.instances {
			best.insert(Neighbor{
				Instance: inst,
				Dist:     cm.L2Raw(target.Vec, inst.Vec),
			})
		}
		return
	}
	near, far := node.left, node.right
	if target.Vec[node.splitDim] >= node.splitVal {
		near, far = far, near
	}
	t.traverse(near, target, best)
	planeDist := math.Abs(target.Vec[node.splitDim] - node.splitVal)
	if !best.full() || planeDist < best.worst() {
		t.traverse(far, target, best)
	}
}

// Spec returns the specification string of the strategy
func (t *KDTree) Spec() string {
	return fmt.Sprintf("%s -L %d", KDTreeName, t.leafSize)
}

// SetOptions parses "-L <leafSize>"
func (t *KDTree) SetOptions(opts []string) error {
	leafStr, err := options.GetOption("L", opts)
	if err != nil {
		return err
	}
	if leafStr != "" {
		leafSize, err := strconv.Atoi(leafStr)
		if err != nil {
			return err
		}
		if leafSize <= 0 {
			return fmt.Errorf("leaf size must be a positive integer, got %d", leafSize)
		}
		t.leafSize = leafSize
	}
	return options.CheckRemaining(opts)
}

// candidates keeps up to k best neighbors sorted by distance
type candidates struct {
	k     int
	items []Neighbor
}

func newCandidates(k int) *candidates {
	return &candidates{k: k, items: make([]Neighbor, 0, k)}
}

func (c *candidates) insert(n Neighbor) {
	idx := sort.Search(len(c.items), func(i int) bool {
		return c.items[i].Dist > n.Dist
	})
	if idx >= c.k {
		return
	}
	c.items = append(c.items, Neighbor{})
	copy(c.items[idx+1:], c.items[idx:])
	c.items[idx] = n
	if len(c.items) > c.k {
		c.items = c.items[:c.k]
	}
}

func (c *candidates) full() bool {
	return len(c.items) == c.k
}

func (c *candidates) worst() float64 {
	return c.items[len(c.items)-1].Dist
}
