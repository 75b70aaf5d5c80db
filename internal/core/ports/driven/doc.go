// Package driven defines the interfaces the core requires from
// infrastructure: the per-directory metric cache, the annotation
// sidecar files, and the model file parser. Adapters implement these;
// services depend only on the interfaces.
package driven
