// Package pathutil checks paths that normjson writes documents to.
//
// [SanitizeOutputPath] cleans an output path, makes it absolute and rejects
// symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink detected
//	}
//
// [DerivedOutputPath] names the file a normalized document is written to
// inside an output directory.
package pathutil
