// Package services defines the error taxonomy shared by the pipeline and the
// remote catalog clients.
//
// Sentinel markers classify failures by how the caller must react:
//   - ErrFormatUnrecognized and ErrInvalidParameter surface to the user for a
//     corrected retry.
//   - ErrRemoteLookup is recovered locally (fallback labels, missing image)
//     and only logged.
//   - ErrCacheIntegrity signals a caller bug and is never swallowed.
//
// Wrap tags an error with one of the markers plus component/operation context
// so errors.Is classification works at any distance from the failure site.
package services
