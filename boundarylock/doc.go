// Package boundarylock marks the vertices shared between neighboring
// partitions as locked against collapse, per spec.md §4.4. Locking
// every shared vertex before simplifying each partition independently
// guarantees the partitions stay gap-free: their shared boundary is
// preserved vertex-for-vertex regardless of how each side simplifies.
package boundarylock
