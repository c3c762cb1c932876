package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var errNoInfoCache = errors.New("profile.info_cache not found")

type localState struct {
	Profile *struct {
		InfoCache map[string]struct {
			Name string `json:"name"`
		} `json:"info_cache"`
	} `json:"profile"`
}

// readChromium parses a Chromium-family "Local State" file
func readChromium(k Kind, root, index string) ([]Profile, error) {
	data, err := os.ReadFile(index)
	if err != nil {
		return nil, err
	}

	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse Local State: %w", err)
	}
	if state.Profile == nil || state.Profile.InfoCache == nil {
		return nil, errNoInfoCache
	}

	ids := make([]string, 0, len(state.Profile.InfoCache))
	for id := range state.Profile.InfoCache {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessProfileID(ids[i], ids[j]) })

	profiles := make([]Profile, 0, len(ids))
	for _, id := range ids {
		name := strings.TrimSpace(state.Profile.InfoCache[id].Name)
		if name == "" {
			name = id
		}
		profiles = append(profiles, Profile{
			Kind: k,
			ID:   id,
			Name: name,
			Dir:  filepath.Join(root, id),
		})
	}
	return profiles, nil
}

// lessProfileID orders "Default" first, then "Profile N" numerically, then
// everything else lexicographically. JSON object order carries no meaning, so
// default colors are assigned over this order instead.
func lessProfileID(a, b string) bool {
	ra, na := profileRank(a)
	rb, nb := profileRank(b)
	if ra != rb {
		return ra < rb
	}
	if ra == 1 && na != nb {
		return na < nb
	}
	return a < b
}

func profileRank(id string) (rank, n int) {
	if id == "Default" {
		return 0, 0
	}
	if rest, ok := strings.CutPrefix(id, "Profile "); ok {
		if v, err := strconv.Atoi(rest); err == nil {
			return 1, v
		}
	}
	return 2, 0
}
