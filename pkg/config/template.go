package config

// FileTemplate is the starter config written by `pipup config --init`.
// Every key is optional; absent keys keep their built-in defaults.
const FileTemplate = `# pipup configuration
#
# pip: path or name of the pip executable to use
# pip: /usr/local/bin/pip3
#
# venv: virtualenv directory whose pip should be used
# venv: ~/.venvs/tools

# Worker pool size for parallel upgrades.
max_workers: 10

# Per-package timeout in seconds. 0 disables the timeout.
timeout: 300

# Keep upgrading the remaining packages after one fails.
continue_on_error: false

# Packages never upgraded, with * and ? wildcards.
# exclude:
#   - torch
#   - nvidia-*
exclude: []
`
