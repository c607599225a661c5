package models

import "encoding/json"

// Records decoded from the Plainly API keep the document they were decoded
// from and marshal back to it unchanged, so fields this package does not
// declare still reach tool and resource output. Records built in code
// marshal from their typed fields.

// UnmarshalJSON decodes the typed fields and keeps the source document
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Project(v)
	p.raw = keep(data)
	return nil
}

// MarshalJSON returns the source document when there is one
func (p Project) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return p.raw, nil
	}
	type plain Project
	return json.Marshal(plain(p))
}

// UnmarshalJSON decodes the typed fields and keeps the source document
func (t *Template) UnmarshalJSON(data []byte) error {
	type plain Template
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Template(v)
	t.raw = keep(data)
	return nil
}

// MarshalJSON returns the source document when there is one
func (t Template) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	type plain Template
	return json.Marshal(plain(t))
}

// UnmarshalJSON decodes the typed fields and keeps the source document
func (r *Render) UnmarshalJSON(data []byte) error {
	type plain Render
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Render(v)
	r.raw = keep(data)
	return nil
}

// MarshalJSON returns the source document when there is one
func (r Render) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain Render
	return json.Marshal(plain(r))
}

// UnmarshalJSON decodes the typed fields and keeps the source document
func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain Asset
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Asset(v)
	a.raw = keep(data)
	return nil
}

// MarshalJSON returns the source document when there is one
func (a Asset) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	type plain Asset
	return json.Marshal(plain(a))
}

// UnmarshalJSON decodes the typed fields and keeps the source document
func (w *Webhook) UnmarshalJSON(data []byte) error {
	type plain Webhook
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*w = Webhook(v)
	w.raw = keep(data)
	return nil
}

// MarshalJSON returns the source document when there is one
func (w Webhook) MarshalJSON() ([]byte, error) {
	if w.raw != nil {
		return w.raw, nil
	}
	type plain Webhook
	return json.Marshal(plain(w))
}

// keep copies data; the decoder may reuse its buffer. A JSON null is not kept.
func keep(data []byte) json.RawMessage {
	if string(data) == "null" {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
