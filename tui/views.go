package tui

// StatusView represents the status output data.
type StatusView struct {
	Version string            `json:"version"`
	Guard   GuardStatusView   `json:"guard"`
	Agents  []AgentStatusView `json:"agents"`
	Config  ConfigStatusView  `json:"config"`
}

// GuardStatusView summarizes how hook events are evaluated.
type GuardStatusView struct {
	Enabled  bool     `json:"enabled"`
	FailOpen bool     `json:"fail_open"`
	Checks   []string `json:"checks"`
}

// AgentStatusView represents an agent's status.
type AgentStatusView struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Installed   bool     `json:"installed"`
	Enabled     bool     `json:"enabled"`
	Version     string   `json:"version,omitempty"`
	HooksPath   string   `json:"hooks_path,omitempty"`
	HooksCount  int      `json:"hooks_count"`
	HooksActive bool     `json:"hooks_active"`
	HooksValid  bool     `json:"hooks_valid"`
	Issues      []string `json:"issues,omitempty"`
}

// ConfigStatusView represents configuration status.
type ConfigStatusView struct {
	Location string `json:"location"`
	Exists   bool   `json:"exists"`
}

// CheckView holds verdicts for paths evaluated by `envguard check`.
type CheckView struct {
	Tool    string            `json:"tool"`
	Results []PathVerdictView `json:"results"`
	Denied  int               `json:"denied"`
}

// PathVerdictView is the verdict for a single path.
type PathVerdictView struct {
	Path      string `json:"path"`
	BaseName  string `json:"base_name"`
	Protected bool   `json:"protected"`
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason,omitempty"`
}

// InstallView represents installation results.
type InstallView struct {
	Agents     []AgentInstallView `json:"agents"`
	Config     string             `json:"config"`
	BackupsDir string             `json:"backups_dir,omitempty"`
	DryRun     bool               `json:"dry_run"`
}

// AgentInstallView represents an agent's installation result.
type AgentInstallView struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"display_name"`
	Installed      bool              `json:"installed"`
	Version        string            `json:"version,omitempty"`
	Path           string            `json:"path,omitempty"`
	HooksInstalled []string          `json:"hooks_installed,omitempty"`
	BackupPaths    map[string]string `json:"backup_paths,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// UninstallView represents uninstallation results.
type UninstallView struct {
	Agents []AgentUninstallView `json:"agents"`
	DryRun bool                 `json:"dry_run"`
}

// AgentUninstallView represents an agent's uninstallation result.
type AgentUninstallView struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	HooksRemoved    []string `json:"hooks_removed,omitempty"`
	BackupsRestored bool     `json:"backups_restored"`
	Error           string   `json:"error,omitempty"`
}

// DoctorView represents doctor check results.
type DoctorView struct {
	Checks []DoctorCheck `json:"checks"`
	AllOK  bool          `json:"all_ok"`
}

// DoctorCheck represents a single doctor check.
type DoctorCheck struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      CheckStatus `json:"status"`
	Message     string      `json:"message,omitempty"`
	Suggestion  string      `json:"suggestion,omitempty"`
}

// CheckStatus represents the status of a doctor check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// ConfigView represents configuration for display.
type ConfigView struct {
	Location string                 `json:"location"`
	Values   map[string]interface{} `json:"values"`
}

// VersionView holds build information.
type VersionView struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	// Update is set when a release check ran.
	Update *UpdateView `json:"update,omitempty"`
}

// UpdateView reports the latest published release.
type UpdateView struct {
	LatestVersion string `json:"latest_version"`
	ReleaseURL    string `json:"release_url,omitempty"`
	Available     bool   `json:"available"`
	Error         string `json:"error,omitempty"`
}

// AgentDefAction names the agents subcommand that produced an AgentDefView.
type AgentDefAction string

const (
	AgentDefGenerate AgentDefAction = "generate"
	AgentDefValidate AgentDefAction = "validate"
)

// AgentDefView reports generated or validated agent definitions.
type AgentDefView struct {
	Action  AgentDefAction       `json:"action"`
	Results []AgentDefResultView `json:"results"`
	Passed  int                  `json:"passed"`
	Failed  int                  `json:"failed"`
}

// AgentDefResultView is the outcome for one spec or agent file.
type AgentDefResultView struct {
	Source string   `json:"source"`
	Output string   `json:"output,omitempty"`
	Name   string   `json:"name,omitempty"`
	Mode   string   `json:"mode,omitempty"`
	Valid  bool     `json:"valid"`
	Steps  []string `json:"steps,omitempty"`
	Errors []string `json:"errors,omitempty"`
}
