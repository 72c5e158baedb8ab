package store

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordPath addresses a record collection (or a single record) the way the
// wire protocol does. Two shapes are accepted: the hierarchical
// users/{uid}/cars/{cid}/{kind}[/{id}] form and the older flattened
// {kind}?user={uid}&car={cid} form. Internally both resolve to the same
// (user, car, kind) key, so nothing above this package ever branches on the
// shape.
type RecordPath struct {
	UserID   uint
	CarID    uint
	Kind     Kind
	RecordID uint // zero when the path addresses the whole collection
}

// String renders the canonical hierarchical form.
func (p RecordPath) String() string {
	base := fmt.Sprintf("users/%d/cars/%d/%s", p.UserID, p.CarID, p.Kind)
	if p.RecordID != 0 {
		return fmt.Sprintf("%s/%d", base, p.RecordID)
	}
	return base
}

// ParseRecordPath parses either accepted shape.
func ParseRecordPath(raw string) (RecordPath, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "/")
	if raw == "" {
		return RecordPath{}, &MissingParameterError{Parameter: "path"}
	}
	if strings.Contains(raw, "?") {
		return parseFlatPath(raw)
	}
	return parseNestedPath(raw)
}

func parseNestedPath(raw string) (RecordPath, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 5 && len(parts) != 6 {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "expected users/{uid}/cars/{cid}/{kind}[/{id}]"}
	}
	if parts[0] != "users" || parts[2] != "cars" {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "expected users/{uid}/cars/{cid}/{kind}[/{id}]"}
	}
	uid, err := parseID(parts[1])
	if err != nil {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "invalid user id"}
	}
	cid, err := parseID(parts[3])
	if err != nil {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "invalid car id"}
	}
	kind := Kind(parts[4])
	if !ValidKind(kind) {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "unknown record kind " + parts[4]}
	}
	p := RecordPath{UserID: uid, CarID: cid, Kind: kind}
	if len(parts) == 6 {
		rid, err := parseID(parts[5])
		if err != nil {
			return RecordPath{}, &ValidationError{Field: "path", Reason: "invalid record id"}
		}
		p.RecordID = rid
	}
	return p, nil
}

func parseFlatPath(raw string) (RecordPath, error) {
	head, query, _ := strings.Cut(raw, "?")
	kind := Kind(head)
	if !ValidKind(kind) {
		return RecordPath{}, &ValidationError{Field: "path", Reason: "unknown record kind " + head}
	}
	p := RecordPath{Kind: kind}
	for _, pair := range strings.Split(query, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		id, err := parseID(v)
		if err != nil {
			return RecordPath{}, &ValidationError{Field: "path", Reason: "invalid " + k}
		}
		switch k {
		case "user":
			p.UserID = id
		case "car":
			p.CarID = id
		case "id":
			p.RecordID = id
		}
	}
	if p.UserID == 0 {
		return RecordPath{}, &MissingParameterError{Parameter: "user"}
	}
	if p.CarID == 0 {
		return RecordPath{}, &MissingParameterError{Parameter: "car"}
	}
	return p, nil
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(v), nil
}
