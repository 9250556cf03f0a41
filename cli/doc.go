// Package cli contains the command line interface for santa.
//
// # Usage
//
//	santa [flags] <command> [args]
//
// With no command, santa runs the given source files, or stdin:
//
//	santa naughty.santa
//	echo 'print(db_records());' | santa
//
// # Commands
//
//   - run: evaluate one program read from files and stdin ("-")
//   - eval: evaluate source text given as an argument and print the result
//   - fmt src|ast|json|yaml: print a program in canonical or structured form
//   - db dump|query: print the database, or the records matching a filter
//   - repl: start an interactive session
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flags are also read from ${XDG_CONFIG_HOME}/santa/config.santa, a santa
// program whose variables name flags with underscores in place of hyphens:
//
//	log_level = "debug";
//	net_count = 5;
//	db_file = "/srv/santa/list.yaml";
//
// Command-line flags override the configuration file. The file is written by
// the init command.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, kitchen, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize output
//
// # Database and Network Options
//
//   - --db-file: YAML database loaded instead of the default list
//   - --net-count: updates delivered by each call to listen()
//   - --net-interval: delay between updates
//   - --net-seed: seed for a repeatable update stream
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o santa .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/santa/pprof)
package cli
