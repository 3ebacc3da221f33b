package help

const QuickstartYAML = `# product-extractor Quick Start

server:
  default: "http://localhost:5000"
  override: "--server URL or EXTRACTOR_SERVER"

output_formats:
  text: "Tables and notices on the terminal (default)"
  json: "Raw service replies to stdout"
  yaml: "Raw service replies to stdout"

commands:
  extract: |
    product-extractor extract https://shop.example.com/sofas
    product-extractor extract --urls "https://a.example,https://b.example"

  history: |
    product-extractor stats
    product-extractor recent

  evaluation: |
    product-extractor test-set --sample-size 30
    product-extractor metrics --details

  batch: |
    product-extractor batch --batch-size 50 --start-index 0

  page: |
    product-extractor page https://shop.example.com/sofas > index.html

limits:
  batch_size: "1..704"
  start_index: "0..703"

exit_codes:
  0: "ok"
  1: "service reported an error or input was out of range"
  2: "service unreachable, bad reply, or bad configuration"
`
