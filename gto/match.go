package gto

import (
	"regexp"
)

// Pattern searches match names with Go regular expressions. A pattern
// matches anywhere in the name unless anchored with ^ or $. Scopes are
// exact names; a scope that does not resolve yields no results.

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &FormatError{Kind: BadPattern, Err: err}
	}
	return re, nil
}

// FindObjects returns the objects whose name matches pattern.
func (r *Reader) FindObjects(pattern string) ([]Object, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	out := []Object{}
	for _, o := range r.idx.objects {
		if re.MatchString(o.Name) {
			out = append(out, o)
		}
	}
	return out, nil
}

// FindComponents returns the components of the object named objectName
// whose name matches pattern.
func (r *Reader) FindComponents(objectName, pattern string) ([]Component, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	out := []Component{}
	oh, ok := r.idx.byName[objectName]
	if !ok {
		return out, nil
	}
	first, end := r.idx.objects[oh].components.handles()
	for _, c := range r.idx.components[first:end] {
		if re.MatchString(c.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindProperties returns the properties of component componentName of
// object objectName whose name matches pattern.
func (r *Reader) FindProperties(objectName, componentName, pattern string) ([]Property, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	out := []Property{}
	ch, err := r.GetComponent(objectName, componentName)
	if err != nil || ch == NotFound {
		return out, err
	}
	first, end := r.idx.components[ch].properties.handles()
	for _, p := range r.idx.properties[first:end] {
		if re.MatchString(p.Name) {
			out = append(out, p)
		}
	}
	return out, nil
}
