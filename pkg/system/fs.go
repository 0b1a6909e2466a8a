package system

import "github.com/spf13/afero"

// AppFs is the filesystem every package reads and deletes through.
// Tests swap it for an afero.MemMapFs.
var AppFs = afero.NewOsFs()
