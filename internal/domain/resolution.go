package domain

import (
	"fmt"
	"strings"
)

const (
	SourceCatalog    = "catalog"
	SourceAssignment = "assignment"
	SourceDelegate   = "delegate"

	NoDepartment   = "Sin departamento"
	NoMunicipality = "Sin municipio"
)

// ResolutionPolicy is the order in which sources are consulted when
// denormalizing location fields onto a report.
type ResolutionPolicy []string

func DefaultResolutionPolicy() ResolutionPolicy {
	return ResolutionPolicy{SourceCatalog, SourceAssignment, SourceDelegate}
}

func ParseResolutionPolicy(order []string) (ResolutionPolicy, error) {
	if len(order) == 0 {
		return DefaultResolutionPolicy(), nil
	}
	seen := make(map[string]bool, len(order))
	policy := make(ResolutionPolicy, 0, len(order))
	for _, src := range order {
		src = strings.ToLower(strings.TrimSpace(src))
		switch src {
		case SourceCatalog, SourceAssignment, SourceDelegate:
		default:
			return nil, fmt.Errorf("unknown resolution source %q", src)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		policy = append(policy, src)
	}
	return policy, nil
}

// LocationFields is the geographic classification stored on a report.
type LocationFields struct {
	Department   string
	Municipality string
	Address      string
	StationCode  string
}

// ResolveLocation fills each field from the first source in the policy that
// has a non-blank value. loc and delegate may be nil.
func (p ResolutionPolicy) ResolveLocation(loc *PollingLocation, a TableAssignment, delegate *Delegate) LocationFields {
	candidates := make(map[string]LocationFields, 3)
	if loc != nil {
		candidates[SourceCatalog] = LocationFields{
			Department:   loc.Department,
			Municipality: loc.Municipality,
			Address:      loc.Address,
			StationCode:  loc.StationCode,
		}
	}
	candidates[SourceAssignment] = LocationFields{
		Department:   a.Department,
		Municipality: a.Municipality,
		Address:      a.Address,
		StationCode:  a.StationCode,
	}
	if delegate != nil {
		candidates[SourceDelegate] = LocationFields{
			Department:   delegate.Department,
			Municipality: delegate.Municipality,
			StationCode:  delegate.StationCode,
		}
	}

	pick := func(get func(LocationFields) string) string {
		for _, src := range p {
			f, ok := candidates[src]
			if !ok {
				continue
			}
			if v := strings.TrimSpace(get(f)); v != "" {
				return v
			}
		}
		return ""
	}

	return LocationFields{
		Department:   orDefault(pick(func(f LocationFields) string { return f.Department }), NoDepartment),
		Municipality: orDefault(pick(func(f LocationFields) string { return f.Municipality }), NoMunicipality),
		Address:      pick(func(f LocationFields) string { return f.Address }),
		StationCode:  pick(func(f LocationFields) string { return f.StationCode }),
	}
}
