// Package config loads vtree.json / vtree.yaml configuration files.
//
// A configuration file tunes the reactive runtime (scheduler threshold,
// synchronous mode, error handling), logging, metrics, tracing and the
// websocket server used by "vtree serve". Every field is optional; missing
// values are filled with defaults by LoadFile.
//
//	{
//	  "scheduler": { "maxUpdateCount": 100 },
//	  "log": { "level": "debug", "format": "json" },
//	  "server": { "address": ":8080", "path": "/ws" }
//	}
//
// The same schema can be written as YAML; the parser is chosen by file
// extension.
package config
