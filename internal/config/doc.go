// Package config loads run settings for vern-raspored.
//
// Settings come from built-in defaults, then an optional json5 file
// (raspored.json5 unless VERN_CONFIG names another), then its ".local"
// sibling (raspored.local.json5). Later sources override earlier ones key by
// key. A .env file in the working directory is loaded into the process
// environment before any of this so credentials can live there.
package config
