//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	appartifact "drive-uploader/application/artifact"
	appauth "drive-uploader/application/auth"
	appdist "drive-uploader/application/distribution"
	"drive-uploader/application/workflow"
	"drive-uploader/domain/artifact"
	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/logging"
	"drive-uploader/infrastructure/memory"

	"github.com/cucumber/godog"
	"github.com/spf13/afero"
)

const (
	credentialsFile = "credentials.json"
	tokenFile       = "token.json"
	artifactFile    = "generated-file.txt"
	folderName      = "Uploaded Via Git Actions"

	exchangedToken = `{"access_token":"ya29.exchanged","refresh_token":"1//refresh","token_type":"Bearer","expiry":"2030-01-01T00:00:00Z"}`
	storedToken    = `{"access_token":"ya29.stored","token_type":"Bearer"}`
)

// stubExchanger implements auth.TokenExchanger for scenarios
type stubExchanger struct {
	reject bool
	calls  int
}

func (s *stubExchanger) Exchange(ctx context.Context, creds *auth.Credentials, code string) (*auth.Token, error) {
	s.calls++
	if s.reject {
		return nil, errors.New("oauth2: \"invalid_grant\" \"Bad Request\"")
	}
	return auth.ParseToken([]byte(exchangedToken))
}

type workflowContext struct {
	fs        afero.Fs
	remote    *memory.Storage
	exchanger *stubExchanger
	authCode  string
	output    bytes.Buffer
	result    *workflow.Result
	err       error
}

var SharedWorkflowContext = &workflowContext{}

func InitializeWorkflowScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedWorkflowContext = &workflowContext{
			fs:        afero.NewMemMapFs(),
			remote:    memory.NewStorage(),
			exchanger: &stubExchanger{},
		}
		return c, nil
	})

	// Steps resolve the context at call time since Before replaces it
	w := func() *workflowContext { return SharedWorkflowContext }

	ctx.Step(`^valid client credentials$`, func() error { return w().validClientCredentials() })
	ctx.Step(`^no client credentials$`, func() error { return w().noClientCredentials() })
	ctx.Step(`^no stored token$`, func() error { return nil })
	ctx.Step(`^a stored token$`, func() error { return w().aTokenFileContaining(storedToken) })
	ctx.Step(`^a token file containing "([^"]*)"$`, func(s string) error { return w().aTokenFileContaining(s) })
	ctx.Step(`^the authorization code "([^"]*)"$`, func(s string) error { w().authCode = s; return nil })
	ctx.Step(`^the authorization server rejects the code$`, func() error { w().exchanger.reject = true; return nil })
	ctx.Step(`^the Drive folder does not exist$`, func() error { return nil })
	ctx.Step(`^the Drive folder already exists$`, func() error { return w().theDriveFolderExistsTimes(1) })
	ctx.Step(`^the Drive folder exists (\d+) times$`, func(n int) error { return w().theDriveFolderExistsTimes(n) })
	ctx.Step(`^I run the upload workflow$`, func() error { return w().iRunTheUploadWorkflow() })
	ctx.Step(`^the workflow succeeds$`, func() error { return w().theWorkflowSucceeds() })
	ctx.Step(`^the workflow fails with exit code (\d+)$`, func(code int) error { return w().theWorkflowFailsWithExitCode(code) })
	ctx.Step(`^the token file contains exactly what the exchange returned$`, func() error { return w().theTokenFileContainsExchangedToken() })
	ctx.Step(`^no token file exists$`, func() error { return w().noTokenFileExists() })
	ctx.Step(`^no authorization code was exchanged$`, func() error { return w().noAuthorizationCodeWasExchanged() })
	ctx.Step(`^(\d+) folders? named "([^"]*)" exists?$`, func(n int, name string) error { return w().foldersNamedExist(n, name) })
	ctx.Step(`^the folder contains (\d+) files? named "([^"]*)"$`, func(n int, name string) error { return w().theFolderContainsFiles(n, name) })
	ctx.Step(`^the uploaded file starts with the greeting$`, func() error { return w().theUploadedFileStartsWithTheGreeting() })
	ctx.Step(`^the file is uploaded into the first folder$`, func() error { return w().theFileIsUploadedIntoTheFirstFolder() })
	ctx.Step(`^nothing is uploaded$`, func() error { return w().nothingIsUploaded() })
}

func (w *workflowContext) validClientCredentials() error {
	creds := `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret","redirect_uris":["urn:ietf:wg:oauth:2.0:oob"]}}`
	return afero.WriteFile(w.fs, credentialsFile, []byte(creds), 0600)
}

func (w *workflowContext) noClientCredentials() error {
	err := w.fs.Remove(credentialsFile)
	if err != nil && !errors.Is(err, afero.ErrFileNotFound) {
		return err
	}
	return nil
}

func (w *workflowContext) aTokenFileContaining(content string) error {
	return afero.WriteFile(w.fs, tokenFile, []byte(content), 0600)
}

func (w *workflowContext) theDriveFolderExistsTimes(n int) error {
	for i := 0; i < n; i++ {
		if _, err := w.remote.CreateFolder(context.Background(), folderName); err != nil {
			return err
		}
	}
	return nil
}

func (w *workflowContext) iRunTheUploadWorkflow() error {
	log := logging.Discard()
	manager := appauth.NewManager(w.fs, w.exchanger, appauth.Paths{
		CredentialsFile: credentialsFile,
		TokenFile:       tokenFile,
	}, log, &w.output)

	service := workflow.NewService(
		appartifact.NewProducer(w.fs, artifactFile, &w.output),
		manager,
		&memory.Connector{Storage: w.remote},
		func(storage distribution.RemoteStorage) workflow.Uploader {
			return appdist.NewUploadService(storage, w.fs, folderName, log, &w.output)
		},
		log,
		&w.output,
	)

	w.result, w.err = service.Run(context.Background(), workflow.Input{AuthCode: w.authCode})
	return nil
}

func (w *workflowContext) theWorkflowSucceeds() error {
	if w.err != nil {
		return fmt.Errorf("expected success, got: %v\noutput:\n%s", w.err, w.output.String())
	}
	return nil
}

func (w *workflowContext) theWorkflowFailsWithExitCode(code int) error {
	if w.err == nil {
		return fmt.Errorf("expected failure with exit code %d, got success", code)
	}
	if got := workflow.ExitCode(w.err); got != code {
		return fmt.Errorf("expected exit code %d, got %d (%v)", code, got, w.err)
	}
	return nil
}

func (w *workflowContext) theTokenFileContainsExchangedToken() error {
	data, err := afero.ReadFile(w.fs, tokenFile)
	if err != nil {
		return fmt.Errorf("token file not written: %w", err)
	}
	if string(data) != exchangedToken {
		return fmt.Errorf("token file differs from exchanged token:\n%s", data)
	}
	return nil
}

func (w *workflowContext) noTokenFileExists() error {
	exists, err := afero.Exists(w.fs, tokenFile)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("expected no token file")
	}
	return nil
}

func (w *workflowContext) noAuthorizationCodeWasExchanged() error {
	if w.exchanger.calls != 0 {
		return fmt.Errorf("expected no exchange, got %d", w.exchanger.calls)
	}
	return nil
}

func (w *workflowContext) foldersNamedExist(n int, name string) error {
	count := 0
	for _, f := range w.remote.Folders() {
		if f.Name == name {
			count++
		}
	}
	if count != n {
		return fmt.Errorf("expected %d folders named %q, got %d", n, name, count)
	}
	return nil
}

func (w *workflowContext) theFolderContainsFiles(n int, name string) error {
	folders := w.remote.Folders()
	if len(folders) == 0 {
		return fmt.Errorf("no folders exist")
	}
	count := 0
	for _, f := range w.remote.Files() {
		if f.ParentID == folders[0].ID && f.Name == name {
			count++
		}
	}
	if count != n {
		return fmt.Errorf("expected %d files named %q in folder, got %d", n, name, count)
	}
	return nil
}

func (w *workflowContext) theUploadedFileStartsWithTheGreeting() error {
	files := w.remote.Files()
	if len(files) != 1 {
		return fmt.Errorf("expected 1 uploaded file, got %d", len(files))
	}
	content := string(files[0].Content)
	if !strings.HasPrefix(content, artifact.Greeting+"\nFile created at: ") {
		return fmt.Errorf("unexpected content: %q", content)
	}
	return nil
}

func (w *workflowContext) theFileIsUploadedIntoTheFirstFolder() error {
	folders := w.remote.Folders()
	files := w.remote.Files()
	if len(files) != 1 {
		return fmt.Errorf("expected 1 uploaded file, got %d", len(files))
	}
	if files[0].ParentID != folders[0].ID {
		return fmt.Errorf("expected parent %s, got %s", folders[0].ID, files[0].ParentID)
	}
	if w.result.Upload.FolderCreated {
		return fmt.Errorf("expected existing folder to be reused")
	}
	return nil
}

func (w *workflowContext) nothingIsUploaded() error {
	if n := len(w.remote.Files()); n != 0 {
		return fmt.Errorf("expected no uploads, got %d", n)
	}
	return nil
}
