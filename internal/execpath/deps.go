package execpath

import "strings"

// Requirement defines an external program a command relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// NixFallback marks programs that can be fetched with "nix run" when
	// they are not installed.
	NixFallback bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	ViaNix      bool   `json:"via_nix,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Check evaluates each requirement and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}

		path, err := Which(cmd)
		if err == nil {
			status.Available = true
			status.Path = path
			results = append(results, status)
			continue
		}

		if req.NixFallback {
			if _, nixErr := Which("nix"); nixErr == nil {
				status.Available = true
				status.ViaNix = true
				status.Detail = "provided by nix run nixpkgs#" + cmd
				results = append(results, status)
				continue
			}
		}
		status.Detail = err.Error()
		results = append(results, status)
	}
	return results
}
