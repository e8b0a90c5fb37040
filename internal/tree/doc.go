// Package tree mirrors a directory hierarchy into an arena of typed nodes.
//
// A Tree owns every node in a single slice. Nodes refer to each other by
// Handle, so a parent link never keeps a subtree alive and dropping the Tree
// releases everything at once. The payload type P is chosen by the caller:
// each hardware subsystem stores its own record per node and fills it from
// the leaf files found while scanning.
//
// Loading skips dotfiles, follows symlinks, and never descends into
// directories rejected by the filter. Children keep the lexical order in
// which os.ReadDir returns them.
package tree
