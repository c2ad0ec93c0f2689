// Package model holds the flat data shapes exchanged with the noLimit
// services: the static token registry, chat payloads, swap quotes and
// results, and the mix job lifecycle types. Monetary values are carried as
// strings, either display-decimal or base-unit integer, never as floats.
package model
