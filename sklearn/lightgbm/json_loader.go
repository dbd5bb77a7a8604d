package lightgbm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// JSONModel represents the top-level structure of a LightGBM JSON model
type JSONModel struct {
	Name                string         `json:"name"`
	Version             string         `json:"version"`
	NumClass            int            `json:"num_class"`
	NumTreePerIteration int            `json:"num_tree_per_iteration"`
	LabelIndex          int            `json:"label_index"`
	MaxFeatureIdx       int            `json:"max_feature_idx"`
	Objective           string         `json:"objective"`
	AverageOutput       bool           `json:"average_output"`
	FeatureNames        []string       `json:"feature_names"`
	TreeInfo            []JSONTreeInfo `json:"tree_info"`
}

// JSONTreeInfo represents information about a single tree
type JSONTreeInfo struct {
	TreeIndex     int          `json:"tree_index"`
	NumLeaves     int          `json:"num_leaves"`
	NumCat        int          `json:"num_cat"`
	Shrinkage     float64      `json:"shrinkage"`
	TreeStructure JSONTreeNode `json:"tree_structure"`
}

// JSONTreeNode represents a node in the tree (can be internal or leaf)
type JSONTreeNode struct {
	// Internal node fields
	SplitIndex    *int            `json:"split_index,omitempty"`
	SplitFeature  int             `json:"split_feature,omitempty"`
	SplitGain     float64         `json:"split_gain,omitempty"`
	Threshold     json.RawMessage `json:"threshold,omitempty"` // number, or "a||b" string for categorical
	DecisionType  string          `json:"decision_type,omitempty"`
	DefaultLeft   bool            `json:"default_left,omitempty"`
	MissingType   string          `json:"missing_type,omitempty"`
	InternalValue float64         `json:"internal_value,omitempty"`
	InternalCount int             `json:"internal_count,omitempty"`
	LeftChild     *JSONTreeNode   `json:"left_child,omitempty"`
	RightChild    *JSONTreeNode   `json:"right_child,omitempty"`

	// Leaf node fields
	LeafIndex int     `json:"leaf_index,omitempty"`
	LeafValue float64 `json:"leaf_value,omitempty"`
	LeafCount int     `json:"leaf_count,omitempty"`
}

func (n *JSONTreeNode) isLeaf() bool {
	return n.LeftChild == nil && n.RightChild == nil
}

// LoadJSONModel parses the output of LightGBM's dump_model() and builds a Booster.
func LoadJSONModel(data []byte) (*Booster, error) {
	var jsonModel JSONModel
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&jsonModel); err != nil {
		return nil, errors.NewModelError("lightgbm.LoadJSONModel", "failed to parse JSON", err)
	}
	return convertJSONModel(&jsonModel)
}

func convertJSONModel(jsonModel *JSONModel) (*Booster, error) {
	objective, err := parseObjective(jsonModel.Objective)
	if err != nil {
		return nil, err
	}
	if jsonModel.NumClass > 1 || jsonModel.NumTreePerIteration > 1 {
		return nil, errors.NewValidationError("num_class", "only single-output regression models are supported", jsonModel.NumClass)
	}
	if len(jsonModel.TreeInfo) == 0 {
		return nil, errors.NewModelError("lightgbm.LoadJSONModel", "model has no trees", errors.ErrEmptyData)
	}

	b := &Booster{
		Trees:         make([]LeavesTree, 0, len(jsonModel.TreeInfo)),
		Objective:     objective,
		AverageOutput: jsonModel.AverageOutput,
		NumFeatures:   jsonModel.MaxFeatureIdx + 1,
		FeatureNames:  jsonModel.FeatureNames,
	}
	if len(b.FeatureNames) > 0 && len(b.FeatureNames) != b.NumFeatures {
		return nil, errors.NewDimensionError("lightgbm.LoadJSONModel", b.NumFeatures, len(b.FeatureNames), 1)
	}

	for i := range jsonModel.TreeInfo {
		treeInfo := &jsonModel.TreeInfo[i]
		tree, err := convertJSONTree(treeInfo, b.NumFeatures)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert tree %d", treeInfo.TreeIndex)
		}
		b.Trees = append(b.Trees, tree)
	}

	return b, nil
}

// parseObjective parses the objective string (e.g. "regression", "tweedie tweedie_variance_power:1.5")
func parseObjective(obj string) (ObjectiveType, error) {
	parts := strings.Fields(obj)
	if len(parts) == 0 {
		return RegressionL2, nil
	}
	switch o := ObjectiveType(parts[0]); o {
	case RegressionL2, RegressionL1, Huber, Fair, Quantile, MAPE:
		return o, nil
	case Poisson, Gamma, Tweedie:
		return o, nil
	default:
		return "", errors.NewValidationError("objective", "not a regression objective", parts[0])
	}
}

// convertJSONTree flattens a nested tree into pre-order node and leaf arrays.
func convertJSONTree(treeInfo *JSONTreeInfo, numFeatures int) (LeavesTree, error) {
	tree := LeavesTree{
		Shrinkage: treeInfo.Shrinkage,
		TreeIndex: treeInfo.TreeIndex,
	}

	root := &treeInfo.TreeStructure
	if root.isLeaf() {
		tree.LeafValues = []float64{root.LeafValue}
		return tree, nil
	}

	if _, err := tree.addNode(root, numFeatures); err != nil {
		return LeavesTree{}, err
	}
	return tree, nil
}

// addNode appends n and returns its reference: a node index, or ^leafIndex for leaves.
func (t *LeavesTree) addNode(n *JSONTreeNode, numFeatures int) (int32, error) {
	if n.isLeaf() {
		if math.IsNaN(n.LeafValue) || math.IsInf(n.LeafValue, 0) {
			return 0, errors.NewValidationError("leaf_value", "must be finite", n.LeafValue)
		}
		t.LeafValues = append(t.LeafValues, n.LeafValue)
		return ^int32(len(t.LeafValues) - 1), nil
	}
	if n.LeftChild == nil || n.RightChild == nil {
		return 0, errors.NewModelError("lightgbm.convertJSONTree", "internal node with a single child", nil)
	}
	if n.SplitFeature < 0 || n.SplitFeature >= numFeatures {
		return 0, errors.NewValidationError("split_feature", fmt.Sprintf("must be in [0, %d)", numFeatures), n.SplitFeature)
	}

	node := LeavesNode{Feature: n.SplitFeature}
	if n.DefaultLeft {
		node.Flags |= defaultLeft
	}
	switch n.MissingType {
	case "", "None":
	case "Zero":
		node.Flags |= missingZero
	case "NaN":
		node.Flags |= missingNan
	default:
		return 0, errors.NewValidationError("missing_type", "unknown missing type", n.MissingType)
	}

	switch n.DecisionType {
	case "", "<=":
		threshold, err := parseNumericalThreshold(n.Threshold)
		if err != nil {
			return 0, err
		}
		node.Threshold = threshold
	case "==":
		cats, err := parseCategoricalThreshold(n.Threshold)
		if err != nil {
			return 0, err
		}
		node.Flags |= categorical
		node.Categories = cats
	default:
		return 0, errors.NewValidationError("decision_type", "unsupported decision type", n.DecisionType)
	}

	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, node)

	left, err := t.addNode(n.LeftChild, numFeatures)
	if err != nil {
		return 0, err
	}
	right, err := t.addNode(n.RightChild, numFeatures)
	if err != nil {
		return 0, err
	}
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right
	return idx, nil
}

func parseNumericalThreshold(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		// 大きな値は "1.0000000180025095e+35" のような文字列で出力されることがある
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, errors.NewValidationError("threshold", "not a number", string(raw))
		}
		parsed, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, errors.NewValidationError("threshold", "not a number", s)
		}
		v = parsed
	}
	return v, nil
}

func parseCategoricalThreshold(raw json.RawMessage) (map[int]struct{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// 単一カテゴリは数値で出力される
		var v float64
		if json.Unmarshal(raw, &v) != nil {
			return nil, errors.NewValidationError("threshold", "not a categorical threshold", string(raw))
		}
		s = strconv.Itoa(int(v))
	}

	cats := make(map[int]struct{})
	for _, part := range strings.Split(s, "||") {
		c, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.NewValidationError("threshold", "not a categorical threshold", s)
		}
		cats[c] = struct{}{}
	}
	return cats, nil
}
