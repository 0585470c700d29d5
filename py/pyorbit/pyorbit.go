// Package pyorbit registers the "orbits" gpython module, exposing groups over perm.Packed16 to Python scripts.
//
//	import orbits
//	G = orbits.example("g100")
//	G.elements_of_depth_number(10)   # 280
//	G.canonical([0, 1, 0, 2, 0, 7])
package pyorbit

import (
	"context"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/lib/walker"
	"github.com/2x3systems/orbits/orbit"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyGroupType = py.NewType("PermGroup16", "a permutation group of degree <= 16 given by a strong generating set")
)

type pyGroup struct {
	*group.Group[perm.Packed16]
}

func (G pyGroup) Type() *py.Type {
	return pyGroupType
}

func (G pyGroup) M__str__() (py.Object, error) {
	return py.String(G.Name), nil
}

func (G pyGroup) M__repr__() (py.Object, error) {
	return py.String("PermGroup16(" + G.Name + ")"), nil
}

func pyBool(b bool) py.Object {
	if b {
		return py.True
	}
	return py.False
}

// sequenceItems returns the items of a list or tuple.
func sequenceItems(obj py.Object) ([]py.Object, error) {
	switch seq := obj.(type) {
	case py.Tuple:
		return seq, nil
	case *py.List:
		return seq.Items, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected a list or tuple (got %v)", obj.Type().Name)
}

// loadVect reads a sequence of ints in 0..255 into a word.
func loadVect(obj py.Object, fill perm.Packed16) (perm.Packed16, error) {
	items, err := sequenceItems(obj)
	if err != nil {
		return fill, err
	}
	if len(items) > orbit.PackedWidth {
		return fill, py.ExceptionNewf(py.ValueError, "%d entries exceed width %d", len(items), orbit.PackedWidth)
	}
	v := fill
	for i, item := range items {
		x, err := py.GetInt(item)
		if err != nil {
			return fill, err
		}
		if x < 0 || x > orbit.MaxPart {
			return fill, py.ExceptionNewf(py.ValueError, "entry %d out of range: %d", i, x)
		}
		v = v.With(i, uint8(x))
	}
	return v, nil
}

// exportVect returns the first n entries of v as a list.
func exportVect(v perm.Packed16, n int) py.Object {
	items := make([]py.Object, n)
	for i := range items {
		items[i] = py.Int(v.At(i))
	}
	return py.NewListFromItems(items)
}

func exportVects(list []perm.Packed16, n int) py.Object {
	items := make([]py.Object, len(list))
	for i, v := range list {
		items[i] = exportVect(v, n)
	}
	return py.NewListFromItems(items)
}

func intArg(args py.Tuple, i int, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	x, err := py.GetInt(args[i])
	return int(x), err
}

func walkError(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

// Arg 1 (str): name
// Arg 2 (int): degree
// Arg 3 (list of list of perms): strong generating set
func py_PermGroup16(module py.Object, args py.Tuple) (py.Object, error) {
	var name string
	var degree int32
	var levelsObj py.Object
	if len(args) != 3 {
		return nil, py.ExceptionNewf(py.TypeError, "PermGroup16(name, degree, sgs) takes 3 arguments (got %d)", len(args))
	}
	if err := py.LoadTuple(args[:2], []interface{}{&name, &degree}); err != nil {
		return nil, err
	}
	levelsObj = args[2]

	levels, err := sequenceItems(levelsObj)
	if err != nil {
		return nil, err
	}
	one := perm.Packed16{}.Identity()
	sgs := make(group.SGS[perm.Packed16], len(levels))
	for i, levelObj := range levels {
		level, err := sequenceItems(levelObj)
		if err != nil {
			return nil, err
		}
		for _, pObj := range level {
			p, err := loadVect(pObj, one)
			if err != nil {
				return nil, err
			}
			sgs[i] = append(sgs[i], p)
		}
	}

	G, err := group.New(name, perm.Packed16{}, int(degree), sgs, group.Opts{})
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyGroup{G}, nil
}

// Arg 1 (str): example key ("S3", "g100", "borie")
func py_Example(module py.Object, args py.Tuple) (py.Object, error) {
	var key string
	if err := py.LoadTuple(args, []interface{}{&key}); err != nil {
		return nil, err
	}
	tb, err := group.LookupExample(key)
	if err != nil {
		return nil, py.ExceptionNewf(py.KeyError, "%v", err)
	}
	return pyGroup{group.MustFromTable(perm.Packed16{}, tb)}, nil
}

func py_Examples(module py.Object, args py.Tuple) (py.Object, error) {
	tables := group.Examples()
	keys := make([]py.Object, len(tables))
	for i, tb := range tables {
		keys[i] = py.String(tb.Key)
	}
	return py.NewListFromItems(keys), nil
}

func py_Group_Name(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	return py.String(G.Name), nil
}

func py_Group_Degree(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	return py.Int(G.N), nil
}

func py_Group_Order(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	return py.Int(G.Order()), nil
}

func py_Group_CheckSGS(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	return pyBool(G.CheckSGS() == nil), nil
}

func py_Group_IsCanonical(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "is_canonical(v) takes 1 argument")
	}
	v, err := loadVect(args[0], perm.Packed16{})
	if err != nil {
		return nil, err
	}
	return pyBool(G.IsCanonical(v, nil)), nil
}

func py_Group_Canonical(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "canonical(v) takes 1 argument")
	}
	v, err := loadVect(args[0], perm.Packed16{})
	if err != nil {
		return nil, err
	}
	return exportVect(G.Canonical(v, nil), G.N), nil
}

func py_Group_Orbit(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "orbit(v) takes 1 argument")
	}
	v, err := loadVect(args[0], perm.Packed16{})
	if err != nil {
		return nil, err
	}
	return exportVects(G.Orbit(v), G.N), nil
}

// Arg 1 (int): depth
// Arg 2 (int, optional): max part (defaults to depth)
func depthArgs(args py.Tuple) (depth, maxPart int, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, py.ExceptionNewf(py.TypeError, "expected (depth[, max_part])")
	}
	if depth, err = intArg(args, 0, 0); err != nil {
		return
	}
	maxPart, err = intArg(args, 1, depth)
	return
}

func py_Group_ElementsOfDepth(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	depth, maxPart, err := depthArgs(args)
	if err != nil {
		return nil, err
	}
	list, err := walker.ElementsOfDepthMaxPart(context.Background(), G.Group, depth, maxPart, walker.Opts{})
	if err != nil {
		return nil, walkError(err)
	}
	return exportVects(list, G.N), nil
}

func py_Group_ElementsOfDepthNumber(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	depth, maxPart, err := depthArgs(args)
	if err != nil {
		return nil, err
	}
	n, err := walker.ElementsOfDepthNumberMaxPart(context.Background(), G.Group, depth, maxPart, walker.Opts{})
	if err != nil {
		return nil, walkError(err)
	}
	return py.Int(n), nil
}

func py_Group_ElementsOfEvaluation(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "elements_of_evaluation(eval) takes 1 argument")
	}
	eval, err := loadVect(args[0], perm.Packed16{})
	if err != nil {
		return nil, err
	}
	list, err := walker.ElementsOfEvaluation(context.Background(), G.Group, eval, walker.Opts{})
	if err != nil {
		return nil, walkError(err)
	}
	return exportVects(list, G.N), nil
}

func py_Group_ElementsOfEvaluationNumber(self py.Object, args py.Tuple) (py.Object, error) {
	G := self.(pyGroup)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "elements_of_evaluation_number(eval) takes 1 argument")
	}
	eval, err := loadVect(args[0], perm.Packed16{})
	if err != nil {
		return nil, err
	}
	n, err := walker.ElementsOfEvaluationNumber(context.Background(), G.Group, eval, walker.Opts{})
	if err != nil {
		return nil, walkError(err)
	}
	return py.Int(n), nil
}

func init() {

	/////////////////////////////////
	// PermGroup16
	{
		pyGroupType.Dict["name"] = py.MustNewMethod("name", py_Group_Name, 0, "returns the group's name")
		pyGroupType.Dict["degree"] = py.MustNewMethod("degree", py_Group_Degree, 0, "returns the number of points acted on")
		pyGroupType.Dict["order"] = py.MustNewMethod("order", py_Group_Order, 0, "returns the number of group elements")
		pyGroupType.Dict["check_sgs"] = py.MustNewMethod("check_sgs", py_Group_CheckSGS, 0, "validates the strong generating set")
		pyGroupType.Dict["is_canonical"] = py.MustNewMethod("is_canonical", py_Group_IsCanonical, 0, "is_canonical(v): is v the largest word in its orbit")
		pyGroupType.Dict["canonical"] = py.MustNewMethod("canonical", py_Group_Canonical, 0, "canonical(v): the largest word in the orbit of v")
		pyGroupType.Dict["orbit"] = py.MustNewMethod("orbit", py_Group_Orbit, 0, "orbit(v): the orbit of v in ascending order")
		pyGroupType.Dict["elements_of_depth"] = py.MustNewMethod("elements_of_depth", py_Group_ElementsOfDepth, 0, "elements_of_depth(depth[, max_part])")
		pyGroupType.Dict["elements_of_depth_number"] = py.MustNewMethod("elements_of_depth_number", py_Group_ElementsOfDepthNumber, 0, "elements_of_depth_number(depth[, max_part])")
		pyGroupType.Dict["elements_of_evaluation"] = py.MustNewMethod("elements_of_evaluation", py_Group_ElementsOfEvaluation, 0, "elements_of_evaluation(eval)")
		pyGroupType.Dict["elements_of_evaluation_number"] = py.MustNewMethod("elements_of_evaluation_number", py_Group_ElementsOfEvaluationNumber, 0, "elements_of_evaluation_number(eval)")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("PermGroup16", py_PermGroup16, 0, "PermGroup16(name, degree, sgs)"),
			py.MustNewMethod("example", py_Example, 0, "example(key): a built-in group"),
			py.MustNewMethod("examples", py_Examples, 0, "lists the built-in group keys"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"WIDTH":       py.Int(orbit.PackedWidth),
			"MAX_PART":    py.Int(orbit.MaxPart),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "orbits",
				Doc:  "canonical orbit representatives under permutation groups",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
