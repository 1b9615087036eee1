package main

import (
	"os"
	"testing"

	"lift/common"
)

func TestApplyPanelFlag(t *testing.T) {
	configured := common.DefaultConfig()
	configured.PanelAddr = "127.0.0.1:4242"

	cases := []struct {
		name string
		cfg  common.Config
		flag string
		want string
	}{
		{"unset keeps file", configured, "", "127.0.0.1:4242"},
		{"address overrides file", configured, "10.0.0.7:4242", "10.0.0.7:4242"},
		{"none forces console", configured, "none", ""},
		{"none without file", common.DefaultConfig(), "none", ""},
		{"address without file", common.DefaultConfig(), "panel:4242", "panel:4242"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := applyPanelFlag(tc.cfg, tc.flag).PanelAddr; got != tc.want {
				t.Fatalf("PanelAddr = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShippedConfigUsesConsole(t *testing.T) {
	f, err := os.Open(common.DEFAULT_CON)
	if err != nil {
		t.Fatalf("open %s: %v", common.DEFAULT_CON, err)
	}
	defer f.Close()

	cfg, err := common.ReadConfig(f)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.PanelAddr != "" {
		t.Fatalf("%s sets panelAddr %q; a plain run should read stdin", common.DEFAULT_CON, cfg.PanelAddr)
	}
}
