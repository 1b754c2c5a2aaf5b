package workflow

import (
	"errors"

	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"
)

// Process exit codes, one per failure kind
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitConfiguration   = 2
	ExitTokenCorrupt    = 3
	ExitMissingAuthCode = 4
	ExitAuthExchange    = 5
	ExitTokenPersist    = 6
	ExitFolderLookup    = 7
	ExitFolderCreate    = 8
	ExitUpload          = 9
	ExitArtifact        = 10
	ExitConnect         = 11
)

var exitCodes = []struct {
	err  error
	code int
}{
	{auth.ErrConfiguration, ExitConfiguration},
	{auth.ErrTokenCorrupt, ExitTokenCorrupt},
	{auth.ErrMissingAuthCode, ExitMissingAuthCode},
	{auth.ErrAuthExchange, ExitAuthExchange},
	{auth.ErrTokenPersist, ExitTokenPersist},
	{distribution.ErrFolderLookup, ExitFolderLookup},
	{distribution.ErrFolderCreate, ExitFolderCreate},
	{distribution.ErrUpload, ExitUpload},
	{distribution.ErrArtifactWrite, ExitArtifact},
	{distribution.ErrArtifactMissing, ExitArtifact},
	{distribution.ErrConnect, ExitConnect},
}

// ExitCode maps an error returned by the workflow to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ExitFailure
}
