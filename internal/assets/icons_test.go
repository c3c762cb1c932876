package assets

import (
	"bytes"
	"testing"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
)

func TestEveryBrowserHasALogo(t *testing.T) {
	for _, k := range browser.AllKinds {
		data := Logo(k)
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("no SVG logo for %s", k)
		}
	}
	if Logo("netscape") != nil {
		t.Error("unknown browser should have no logo")
	}
}

func TestLogosRender(t *testing.T) {
	for _, k := range browser.AllKinds {
		spec := icon.DefaultSpec()
		spec.Overlay = icon.Overlay{Data: Logo(k)}
		res, err := icon.Render(spec)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if len(res.Skipped) != 0 {
			t.Errorf("%s: overlay skipped: %v", k, res.Skipped)
		}
	}
}
