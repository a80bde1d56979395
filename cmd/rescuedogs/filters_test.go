package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

func TestParsePatch(t *testing.T) {
	base := model.Filter{Breed: "Poodle", Sex: model.SexMale, OrganizationID: 3}

	tests := []struct {
		name string
		args []string
		want model.Filter
	}{
		{
			name: "set enums case-insensitively",
			args: []string{"size=large", "age=PUPPY"},
			want: model.Filter{Breed: "Poodle", Sex: model.SexMale, OrganizationID: 3, Size: model.SizeLarge, AgeCategory: model.AgePuppy},
		},
		{
			name: "any clears",
			args: []string{"sex=any", "breed="},
			want: model.Filter{OrganizationID: 3},
		},
		{
			name: "org by id",
			args: []string{"org=12"},
			want: model.Filter{Breed: "Poodle", Sex: model.SexMale, OrganizationID: 12},
		},
		{
			name: "org cleared",
			args: []string{"org=any"},
			want: model.Filter{Breed: "Poodle", Sex: model.SexMale},
		},
		{
			name: "adoption region",
			args: []string{"to-country=UK", "to-region=Wales"},
			want: model.Filter{Breed: "Poodle", Sex: model.SexMale, OrganizationID: 3, AvailableToCountry: "UK", AvailableToRegion: "Wales"},
		},
		{
			name: "query parameter names",
			args: []string{"location_country=TR", "age_category=Senior"},
			want: model.Filter{Breed: "Poodle", Sex: model.SexMale, OrganizationID: 3, LocationCountry: "TR", AgeCategory: model.AgeSenior},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePatch(tt.args)
			if err != nil {
				t.Fatalf("parsePatch(%v) error = %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, p.Apply(base)); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePatch_Errors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"size"},
		{"size=huge"},
		{"sex=robot"},
		{"age=ancient"},
		{"org=abc"},
		{"org=-4"},
		{"colour=brown"},
	} {
		if _, err := parsePatch(args); err == nil {
			t.Errorf("parsePatch(%v) = nil error, want error", args)
		}
	}
}

func TestParseEnum(t *testing.T) {
	sizes := []model.Size{model.SizeSmall, model.SizeXLarge}
	if got, ok := parseEnum("xlarge", sizes); !ok || got != model.SizeXLarge {
		t.Errorf("parseEnum(xlarge) = %q, %v", got, ok)
	}
	if got, ok := parseEnum("", sizes); !ok || got != model.SizeAny {
		t.Errorf("parseEnum(\"\") = %q, %v; want neutral", got, ok)
	}
	if _, ok := parseEnum("Medium", sizes); ok {
		t.Error("parseEnum(Medium) should fail when not an option")
	}
}
