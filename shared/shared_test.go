package shared_test

import (
	"testing"

	"fleetrent/shared"
	"fleetrent/shared/constant"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "valid TRUE string",
			input:    "TRUE",
			expected: boolPtr(true),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "partial last page rounds up",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "single page",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)

			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Make        string  `db:"make"`
		Year        int     `db:"year"`
		TotalAmount float64 `db:"total_amount"`
		Status      string  `json:"status"`
	}

	req := updateRequest{
		Make:        "Toyota",
		TotalAmount: 1500,
		Status:      "active",
	}

	fields := shared.TransformFields(req, "tester")

	if fields["make"] != "Toyota" {
		t.Errorf("expected make to be Toyota, got %v", fields["make"])
	}

	if fields["total_amount"] != 1500.0 {
		t.Errorf("expected total_amount to be 1500, got %v", fields["total_amount"])
	}

	if _, ok := fields["year"]; ok {
		t.Error("expected zero-valued year to be excluded")
	}

	if _, ok := fields["status"]; ok {
		t.Error("expected field without db tag to be excluded")
	}

	if fields[constant.FieldModifiedBy] != "tester" {
		t.Errorf("expected modified_by to be tester, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		suffixes []string
		expected string
	}{
		{
			name:     "single suffix",
			prefix:   "booking:get",
			suffixes: []string{"RNT-20250310-001"},
			expected: "booking:get:RNT-20250310-001",
		},
		{
			name:     "multiple suffixes",
			prefix:   "limiter",
			suffixes: []string{"10.0.0.1", "agent"},
			expected: "limiter:10.0.0.1:agent",
		},
		{
			name:     "no suffix",
			prefix:   "stats:dashboard",
			suffixes: nil,
			expected: "stats:dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.suffixes...)

			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}
