package gto

import "errors"

// SkipEntity may be returned by a WalkFunc for an object or component to
// skip its children.
var SkipEntity = errors.New("skip this entity")

// ErrStopWalk may be returned by a WalkFunc to end the walk early. Walk
// then returns nil.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for each entity during Walk. path is the dotted path
// of the entity (see ParsePath). Returning any other non-nil error stops
// the walk and Walk returns that error.
type WalkFunc func(path string, level Level, h Handle) error

// Walk visits every indexed entity depth first in file order: each object,
// then its components, each followed by its properties.
//
// Example:
//
//	r.Walk(func(path string, level gto.Level, h gto.Handle) error {
//	    if level == gto.LevelProperty {
//	        p, _ := r.PropertyAt(h)
//	        fmt.Println(path, p.Type, p.Count)
//	    }
//	    return nil
//	})
func (r *Reader) Walk(fn WalkFunc) error {
	if err := r.check(); err != nil {
		return err
	}
	err := walk(r.idx, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(x *index, fn WalkFunc) error {
	for _, o := range x.objects {
		err := fn(o.Name, LevelObject, o.Handle)
		if errors.Is(err, SkipEntity) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walkComponents(x, o, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkComponents(x *index, o Object, fn WalkFunc) error {
	first, end := o.components.handles()
	for _, c := range x.components[first:end] {
		path := JoinPath(o.Name, c.Name)
		err := fn(path, LevelComponent, c.Handle)
		if errors.Is(err, SkipEntity) {
			continue
		}
		if err != nil {
			return err
		}

		pfirst, pend := c.properties.handles()
		for _, p := range x.properties[pfirst:pend] {
			err := fn(JoinPath(path, p.Name), LevelProperty, p.Handle)
			if err != nil && !errors.Is(err, SkipEntity) {
				return err
			}
		}
	}
	return nil
}
