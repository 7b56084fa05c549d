package configloader

import "github.com/yaklabco/seevg/pkg/config"

// merge overlays the set fields of override onto base. Zero values in
// override leave base unchanged, so a false flag cannot turn a setting off;
// the CLI applies such flags after loading.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format.MaxLineWidth != 0 {
		result.Format.MaxLineWidth = override.Format.MaxLineWidth
	}
	if override.Format.FontSize != 0 {
		result.Format.FontSize = override.Format.FontSize
	}
	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	if override.Serve.Zoom != 0 {
		result.Serve.Zoom = override.Serve.Zoom
	}
	if override.Serve.Watch {
		result.Serve.Watch = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	result.Write = result.Write || override.Write
	result.Check = result.Check || override.Check
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups

	return result
}
