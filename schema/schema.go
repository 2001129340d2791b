// Package schema has models and constants shared by all parts of irmetrics.
package schema
