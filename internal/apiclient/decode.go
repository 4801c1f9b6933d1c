package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/me/insadmin/internal/paging"
)

// listKeys are the envelope keys a list may arrive under, in lookup order.
var listKeys = []string{"data", "items", "rows", "users", "vehicles", "payments", "centers", "data.data", "data.items"}

// decodeList extracts the list and optional page metadata from any of the
// response shapes the remote API uses: a bare array or an envelope keyed
// by one of keys (listKeys when none are given). A body with no list
// decodes to an empty list.
func decodeList(body []byte, keys ...string) ([]json.RawMessage, *paging.Metadata, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []json.RawMessage{}, nil, nil
	}
	if body[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil, nil
	}
	if body[0] != '{' {
		return nil, nil, fmt.Errorf("decode list: unexpected body %q", truncate(body, 40))
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, fmt.Errorf("decode list: %w", err)
	}
	if len(keys) == 0 {
		keys = listKeys
	}

	items := []json.RawMessage{}
	for _, k := range keys {
		raw, ok := lookup(env, k)
		if !ok || !isArray(raw) {
			continue
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, fmt.Errorf("decode list %s: %w", k, err)
		}
		break
	}
	return items, decodeMeta(env), nil
}

// decodeMeta reads page metadata from meta, data.meta or the top level.
// It returns nil when none of them carry a page field.
func decodeMeta(env map[string]json.RawMessage) *paging.Metadata {
	for _, k := range []string{"meta", "data.meta", "pagination"} {
		raw, ok := lookup(env, k)
		if !ok {
			continue
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil {
			if m := metaFrom(obj); m != nil {
				return m
			}
		}
	}
	return metaFrom(env)
}

// metaFrom returns the metadata exactly as sent; fields the server left
// out stay zero so callers can tell them from reported values.
func metaFrom(obj map[string]json.RawMessage) *paging.Metadata {
	found := false
	for _, k := range []string{"total", "page", "pages", "totalPages", "hasNext"} {
		if _, ok := obj[k]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	m := paging.Metadata{
		Total:   intField(obj, "total"),
		Page:    intField(obj, "page"),
		Limit:   intField(obj, "limit"),
		Pages:   intField(obj, "pages"),
		HasPrev: boolField(obj, "hasPrev"),
		HasNext: boolField(obj, "hasNext"),
	}
	if m.Pages == 0 {
		m.Pages = intField(obj, "totalPages")
	}
	return &m
}

func boolField(obj map[string]json.RawMessage, key string) bool {
	var b bool
	if raw, ok := obj[key]; ok && json.Unmarshal(raw, &b) == nil {
		return b
	}
	return false
}

func intField(obj map[string]json.RawMessage, key string) int {
	raw, ok := obj[key]
	if !ok {
		return 0
	}
	var f flexFloat
	if json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return int(f)
}

// lookup resolves a dotted key such as "data.items" in an envelope.
func lookup(env map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	parts := strings.Split(key, ".")
	cur := env
	for i, p := range parts {
		raw, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return raw, true
		}
		var next map[string]json.RawMessage
		if json.Unmarshal(raw, &next) != nil {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// payload returns data when the envelope wraps an object under it,
// otherwise the body itself.
func payload(body []byte) []byte {
	var env map[string]json.RawMessage
	if json.Unmarshal(body, &env) != nil {
		return body
	}
	if raw, ok := env["data"]; ok {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return raw
		}
	}
	return body
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// decodeItems converts raw list entries through a wire type W.
func decodeItems[W any, T any](raw []json.RawMessage, conv func(W) T) ([]T, error) {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var w W
		if err := json.Unmarshal(r, &w); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		out = append(out, conv(w))
	}
	return out, nil
}

// oid accepts a plain string id or Mongo extended JSON {"$oid": "..."}.
type oid string

func (o *oid) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = oid(s)
	case '{':
		var v struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*o = oid(v.OID)
	default:
		*o = oid(string(b))
	}
	return nil
}

// ref is a reference that may be an id or a populated object.
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] != '{' {
		var id oid
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		r.ID = string(id)
		return nil
	}
	var v struct {
		MongoID oid    `json:"_id"`
		ID      oid    `json:"id"`
		OID     string `json:"$oid"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r.ID = firstNonEmpty(string(v.MongoID), string(v.ID), v.OID)
	r.Name = v.Name
	return nil
}

// flexTime accepts RFC 3339 strings, date-only strings, epoch
// milliseconds and {"$date": ...}.
type flexTime struct {
	t *time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.t = parseTime(s)
	case '{':
		var v struct {
			Date json.RawMessage `json:"$date"`
			Long string          `json:"$numberLong"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if len(v.Date) > 0 {
			return f.UnmarshalJSON(v.Date)
		}
		if ms, err := strconv.ParseInt(v.Long, 10, 64); err == nil {
			t := time.UnixMilli(ms).UTC()
			f.t = &t
		}
	default:
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return nil
		}
		t := time.UnixMilli(ms).UTC()
		f.t = &t
	}
	return nil
}

func (f flexTime) ptr() *time.Time {
	return f.t
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// flexFloat accepts a JSON number, a numeric string or Mongo's
// {"$numberDecimal": "..."}.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		*f = flexFloat(v)
	case '{':
		var v struct {
			Decimal string `json:"$numberDecimal"`
			Int     string `json:"$numberInt"`
			Long    string `json:"$numberLong"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n, _ := strconv.ParseFloat(firstNonEmpty(v.Decimal, v.Int, v.Long), 64)
		*f = flexFloat(n)
	default:
		var v float64
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexFloat(v)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstFloat returns the first non-nil value, or 0.
func firstFloat(vals ...*flexFloat) float64 {
	for _, v := range vals {
		if v != nil {
			return float64(*v)
		}
	}
	return 0
}
