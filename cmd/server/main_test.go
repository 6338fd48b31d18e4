package main

import (
	"testing"

	"github.com/woozymasta/coordparse/internal/config"

	"github.com/jessevdk/go-flags"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unset keeps config", nil, 3},
		{"zero precision", []string{"--precision", "0"}, 0},
		{"explicit precision", []string{"-P", "9"}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts Options
			if _, err := flags.NewParser(&opts, flags.None).ParseArgs(tt.args); err != nil {
				t.Fatalf("ParseArgs: %v", err)
			}

			cfg := config.Default()
			cfg.Precision = 3
			opts.apply(cfg)

			if cfg.Precision != tt.want {
				t.Errorf("precision = %d, want %d", cfg.Precision, tt.want)
			}
			if cfg.BatchLimit != config.DefaultBatchLimit {
				t.Errorf("batch limit changed to %d", cfg.BatchLimit)
			}
		})
	}
}
