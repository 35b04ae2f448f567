package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// RotationGrace is how long a rotated refresh token keeps renewing. Requests
// already in flight with the old pair still get a session.
const RotationGrace = 30 * time.Second

type AuthService struct {
	Members repo.MemberRepository
	Tx      repo.Transactor
	Tokens  repo.TokenStore
	Codes   *AuthCodeSender
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Clock   func() time.Time
}

func NewAuthService(members repo.MemberRepository, tx repo.Transactor, tokens repo.TokenStore, codes *AuthCodeSender, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Members: members, Tx: tx, Tokens: tokens, Codes: codes, JWT: jwt, Logger: logger}
}

type SignUpInput struct {
	LoginID   string
	Email     string
	Password  string
	RealName  string
	NickName  string
	AuthCode  string
	Birthday  *time.Time
	StudentID *string
}

// Renewal is the outcome of a successful token renewal.
type Renewal struct {
	Principal Principal
	Tokens    TokenPair
}

// SendSignUpCode mails a verification code to an address not yet in use.
func (s *AuthService) SendSignUpCode(ctx context.Context, email, ip string) error {
	exists, err := s.Members.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(email, "email", apperror.MemberEmailDuplicate)
	}
	return s.Codes.Send(ctx, email, ip)
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*entity.Member, error) {
	if err := s.checkDuplicates(ctx, in); err != nil {
		return nil, err
	}
	if err := s.Codes.Verify(ctx, in.Email, in.AuthCode); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	m := &entity.Member{
		LoginID:      in.LoginID,
		EmailAddress: in.Email,
		Password:     hash,
		RealName:     in.RealName,
		NickName:     in.NickName,
		Birthday:     in.Birthday,
		StudentID:    in.StudentID,
		Generation:   entity.GenerationOf(nowFrom(s.Clock)),
		Jobs:         []entity.JobType{entity.JobMember},
	}
	err = runTx(ctx, s.Tx, func(ctx context.Context) error {
		if err := s.Members.Create(ctx, m); err != nil {
			return memberDuplicate(err, m)
		}
		return s.Members.AssignJob(ctx, m.ID, entity.JobMember)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("member_id", m.ID).Info("member signed up")
	}
	return m, nil
}

func (s *AuthService) checkDuplicates(ctx context.Context, in SignUpInput) error {
	if ok, err := s.Members.ExistsByLoginID(ctx, in.LoginID); err != nil {
		return err
	} else if ok {
		return apperror.New(in.LoginID, "loginId", apperror.MemberLoginIDDuplicate)
	}
	if ok, err := s.Members.ExistsByEmail(ctx, in.Email); err != nil {
		return err
	} else if ok {
		return apperror.New(in.Email, "email", apperror.MemberEmailDuplicate)
	}
	if in.StudentID != nil {
		if ok, err := s.Members.ExistsByStudentID(ctx, *in.StudentID); err != nil {
			return err
		} else if ok {
			return apperror.New(*in.StudentID, "studentId", apperror.MemberStudentIDDuplicate)
		}
	}
	return nil
}

// SignIn validates the login id and password and issues a fresh token pair.
func (s *AuthService) SignIn(ctx context.Context, loginID, password string) (*entity.Member, TokenPair, error) {
	m, err := s.Members.GetByLoginID(ctx, loginID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, apperror.Of(apperror.MemberWrongIDOrPassword)
	}
	if err != nil {
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(m.Password, password) {
		return nil, TokenPair{}, apperror.Of(apperror.MemberWrongIDOrPassword)
	}
	pair, err := s.IssueTokens(ctx, m)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return m, pair, nil
}

// IssueTokens signs an access/refresh pair and caches the refresh token until it expires.
func (s *AuthService) IssueTokens(ctx context.Context, m *entity.Member) (TokenPair, error) {
	roles := make([]string, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		roles = append(roles, string(j))
	}
	access, aexp, err := s.JWT.GenerateAccessToken(m.ID, roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(m.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	if err := s.Tokens.Save(ctx, refresh, time.Until(rexp)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Error("cache refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// SignOut forgets the refresh token so it can no longer renew the session.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Tokens.Delete(ctx, refreshToken)
}

// Authenticate returns the principal of a valid access token.
func (s *AuthService) Authenticate(accessToken string) (Principal, bool) {
	claims, status := s.JWT.InspectAccessToken(accessToken)
	if status != helpers.TokenValid {
		return Principal{}, false
	}
	p := Principal{MemberID: claims.MemberID}
	for _, r := range claims.Roles {
		p.Roles = append(p.Roles, entity.JobType(r))
	}
	return p, true
}

// Renew rotates the token pair when the access token has expired and the refresh
// token is valid and still cached. It returns nil when no renewal applies.
func (s *AuthService) Renew(ctx context.Context, accessToken, refreshToken string) (*Renewal, error) {
	if _, status := s.JWT.InspectAccessToken(accessToken); status != helpers.TokenExpired {
		return nil, nil
	}
	claims, status := s.JWT.InspectRefreshToken(refreshToken)
	if status != helpers.TokenValid {
		return nil, nil
	}
	ok, err := s.Tokens.Exists(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	m, err := s.Members.GetByID(ctx, claims.MemberID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pair, err := s.IssueTokens(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.Save(ctx, refreshToken, RotationGrace); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("member_id", m.ID).Warn("shorten rotated refresh token failed")
	}
	return &Renewal{Principal: principalOf(m), Tokens: pair}, nil
}
