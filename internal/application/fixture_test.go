package application

import (
	"testing"
	"time"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
)

// pngHeader is enough for mimetype to detect image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fixture struct {
	store   *fakes.Store
	members *fakes.MemberRepository
	tokens  *fakes.Tokens
	codes   *fakes.Codes
	queue   *fakes.Queue
	index   *fakes.Index
	blobs   *fakes.Blobs
	cfg     *config.Config
	files   *FileService
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fakes.NewStore()
	f := &fixture{
		store:   store,
		members: store.Members(),
		tokens:  fakes.NewTokens(),
		codes:   fakes.NewCodes(),
		queue:   &fakes.Queue{},
		index:   fakes.NewIndex(),
		blobs:   fakes.NewBlobs(),
		cfg: &config.Config{
			EmailAuthTTL:    5 * time.Minute,
			ClubName:        "KEEPER",
			HomepageURL:     "https://keeper.or.kr",
			VirtualMemberID: 1,
		},
		now: time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
	}
	f.files = NewFileService(store.Files(), f.blobs, "/img/default.png", nil)
	f.files.Clock = f.clock
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) member(loginID string, point int, jobs ...entity.JobType) *entity.Member {
	return f.members.Seed(&entity.Member{
		LoginID:      loginID,
		EmailAddress: loginID + "@keeper.or.kr",
		RealName:     loginID,
		NickName:     loginID,
		Point:        point,
		Jobs:         jobs,
	})
}

func fakesTx() fakes.Tx { return fakes.Tx{} }
