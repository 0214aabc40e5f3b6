package config

// Template returns the documented configuration written by "gomdlinks init".
func Template() []byte {
	return []byte(`# gomdlinks configuration
# See: https://github.com/yaklabco/gomdlinks

# Revision new files are diffed against (git diff <base_ref>...HEAD).
base_ref: master

# Maximum number of files checked at once (0 = no limit).
# jobs: 0

# Timeout for a single HTTP probe.
# timeout: 10s

# Maximum number of links probed at once inside a single file.
# link_concurrency: 4

# Markdown flavor used to find links: gfm (finds bare URLs in prose) or commonmark
flavor: gfm

# Excuse dead links that name a file added in the current change.
# ignore_added: true

# Extra patterns stripped from Markdown before checking. They run after the
# built-in localhost, script src, and CDN root patterns and may use lookarounds.
# whitelist:
#   - 'https://staging\.example\.com[^)\s]*'
`)
}
