package login

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"

	"github.com/Kaidooo2024/momentum.day/pkg/remote"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Login establishes the remote session: authenticate, fetch the user's
// records and replace the local snapshot with them.
type Login struct {
	Project string
	User    string

	Store *store.RecordStore
}

func (l *Login) Do(ctx context.Context) error {
	if l.Project == "" {
		return errors.New("login: no document store project configured")
	}
	if l.User == "" {
		return errors.New("login: no user id configured")
	}

	ts, err := google.DefaultTokenSource(ctx, remote.DatastoreScope)
	if err != nil {
		return fmt.Errorf("login: credentials: %w", err)
	}
	docs, err := remote.NewFirestore(ctx, l.Project, ts)
	if err != nil {
		return err
	}

	m := remote.NewMirror(docs)
	if err := m.SignIn(ctx, l.Store, l.User); err != nil {
		return err
	}
	l.Store.SetMirror(m)

	fmt.Printf("signed in as %s, %d notes and %d tasks fetched\n",
		l.User, len(l.Store.Notes()), len(l.Store.Tasks()))
	return nil
}

// Logout drops the session and wipes the local snapshot. Remote data is
// untouched.
type Logout struct {
	Store *store.RecordStore
}

func (l *Logout) Do(_ context.Context) error {
	if !l.Store.Signed() {
		fmt.Println("not signed in")
		return nil
	}
	remote.SignOut(l.Store)
	fmt.Println("signed out, local records cleared")
	return nil
}
