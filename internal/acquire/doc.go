// Package acquire makes sure the FFmpeg binary is available before the
// dubbing app renders locally.
//
// An Ensurer first checks PATH and the working directory. When the binary is
// missing it delegates to one Strategy chosen per platform:
//   - ArchiveStrategy downloads a ZIP build and extracts the executable
//     (Windows).
//   - PackageManagerStrategy shells out to brew or apt-get (macOS, Linux).
//   - ManualStrategy only prints instructions (everything else).
//
// Acquisition failures never abort setup. They are logged and reported in the
// Result together with manual-install instructions.
package acquire
