package config

// SampleConfig returns a starter configuration file with comments
func SampleConfig() string {
	return `# stockpca configuration
version: "1.0"

api:
  # Analysis backend endpoint. Can also be set via STOCKPCA_API_BASE_URL
  # or a .env file next to the binary.
  base_url: "http://localhost:5000/api"
  health_timeout: 5s
  analyze_timeout: 30s

output:
  # text | json | markdown | csv
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false

charts:
  # Where decoded chart PNGs are written when saving is enabled
  dir: "./charts"
  save: false
`
}
