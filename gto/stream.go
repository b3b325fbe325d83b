package gto

import (
	"github.com/gatgui/gto/internal/record"
)

// traverse indexes tbl depth first in file order, asking cb about every
// entity. Rejected objects and components are left out of the index with
// all their descendants. Rejected properties are indexed but never read.
// With decode set, accepted properties are decoded and passed to the
// data sink.
func (r *Reader) traverse(tbl *record.Table, cb *callbacks, decode bool) error {
	ci, pi := 0, 0
	for i := range tbl.Objects {
		ro := &tbl.Objects[i]
		oinfo := ObjectInfo{
			Name:            ro.Name,
			Protocol:        ro.Protocol,
			ProtocolVersion: ro.ProtocolVersion,
			NumComponents:   int(ro.NumComponents),
		}
		ok, err := cb.acceptObject(&oinfo)
		if err != nil {
			return r.abort(StageObject, ro.Name, err)
		}
		if !ok {
			r.log.Debug("object rejected", "object", ro.Name)
			for range ro.NumComponents {
				pi += int(tbl.Components[ci].NumProperties)
				ci++
			}
			continue
		}
		oh := r.idx.addObject(oinfo)

		for range ro.NumComponents {
			rc := &tbl.Components[ci]
			ci++
			cinfo := ComponentInfo{
				Name:           rc.Name,
				Interpretation: rc.Interpretation,
				Flags:          rc.Flags,
				NumProperties:  int(rc.NumProperties),
				ObjectName:     ro.Name,
			}
			ok, err := cb.acceptComponent(&cinfo)
			if err != nil {
				return r.abort(StageComponent, rc.Name, err)
			}
			if !ok {
				r.log.Debug("component rejected", "object", ro.Name, "component", rc.Name)
				pi += int(rc.NumProperties)
				continue
			}
			ch := r.idx.addComponent(oh, cinfo)

			for range rc.NumProperties {
				rp := &tbl.Properties[pi]
				pi++
				pinfo := PropertyInfo{
					Name:           rp.Name,
					Interpretation: rp.Interpretation,
					Type:           rp.Type,
					Width:          int(rp.Width),
					Count:          int(rp.Count),
					ObjectName:     ro.Name,
					ComponentName:  rc.Name,
				}
				ph := r.idx.addProperty(ch, pinfo, rp.Block)

				ok, err := cb.acceptProperty(&pinfo)
				if err != nil {
					return r.abort(StageProperty, rp.Name, err)
				}
				if !ok || !decode {
					continue
				}

				data, err := r.decode(&r.idx.properties[ph])
				if err != nil {
					return err
				}
				if err := cb.dataRead(data, &pinfo); err != nil {
					return r.abort(StageData, rp.Name, err)
				}
				r.delivered.Add(uint32(ph))
			}
		}
	}
	return nil
}

func (r *Reader) abort(stage Stage, name string, err error) error {
	r.log.Warn("callback aborted read", "path", r.path, "stage", stage, "name", name, "error", err)
	return &CallbackError{Stage: stage, Name: name, Err: err}
}
