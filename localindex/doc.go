// Package localindex builds the compact (vertices, triangles) local-index
// form of a cluster's triangle list: a vertex array addressed by byte-sized
// local ids plus a local-index triangle buffer, the same pair of arrays
// meshopt_Meshlet exposes and clusterizer expands back into global indices.
// The lookup during construction uses a small direct-mapped cache with a
// linear-scan fallback on collision rather than a general hash map, mirroring
// the original clodLocalIndices routine this package is modeled on.
package localindex
