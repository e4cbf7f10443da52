package verification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/adesao-api/internal/domain"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/infrastructure/registry"
	"github.com/adesao-api/internal/infrastructure/viacep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegistry struct{ mock.Mock }

func (m *mockRegistry) Search(ctx context.Context, cpf, birthISO string) (*registry.Match, error) {
	args := m.Called(ctx, cpf, birthISO)
	if r, _ := args.Get(0).(*registry.Match); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPartner struct{ mock.Mock }

func (m *mockPartner) CheckEmail(ctx context.Context, email string) (*partner.StatusResponse, error) {
	args := m.Called(ctx, email)
	if r, _ := args.Get(0).(*partner.StatusResponse); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartner) CheckCoupon(ctx context.Context, code string) (*partner.StatusResponse, error) {
	args := m.Called(ctx, code)
	if r, _ := args.Get(0).(*partner.StatusResponse); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartner) CheckCPFExists(ctx context.Context, cpf string) (*partner.ExistsResponse, error) {
	args := m.Called(ctx, cpf)
	if r, _ := args.Get(0).(*partner.ExistsResponse); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPostal struct{ mock.Mock }

func (m *mockPostal) Lookup(ctx context.Context, cep string) (*viacep.Address, error) {
	args := m.Called(ctx, cep)
	if r, _ := args.Get(0).(*viacep.Address); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(reg *mockRegistry, p *mockPartner, post *mockPostal) Service {
	return NewService(ServiceDeps{Registry: reg, Partner: p, Postal: post})
}

// --- LookupTaxID ---

func TestLookupTaxID_IncompleteInput_NoCall(t *testing.T) {
	reg := &mockRegistry{}
	svc := newTestService(reg, &mockPartner{}, &mockPostal{})

	res, err := svc.LookupTaxID(context.Background(), "529.982", "15/06/1990")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = svc.LookupTaxID(context.Background(), "52998224725", "15/06")
	require.NoError(t, err)
	assert.Nil(t, res)

	reg.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupTaxID_Match_ReturnsName(t *testing.T) {
	reg := &mockRegistry{}
	reg.On("Search", mock.Anything, "52998224725", "1990-06-15").
		Return(&registry.Match{ID: "42", Name: "Alice Souza"}, nil)
	svc := newTestService(reg, &mockPartner{}, &mockPostal{})

	res, err := svc.LookupTaxID(context.Background(), "529.982.247-25", "15/06/1990")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Verified)
	assert.Equal(t, "Alice Souza", res.Name)
	reg.AssertExpectations(t)
}

func TestLookupTaxID_NoMatch_Warning(t *testing.T) {
	reg := &mockRegistry{}
	reg.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	svc := newTestService(reg, &mockPartner{}, &mockPostal{})

	res, err := svc.LookupTaxID(context.Background(), "52998224725", "15/06/1990")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Verified)
	assert.Equal(t, "CPF não encontrado. Verifique o CPF e data de nascimento.", res.Warning)
}

// --- CheckEmail ---

func TestCheckEmail_Free(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckEmail", mock.Anything, "alice@example.com").
		Return(&partner.StatusResponse{Status: "success"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Empty(t, res.Warning)
}

func TestCheckEmail_Taken_Warning(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckEmail", mock.Anything, mock.Anything).
		Return(&partner.StatusResponse{Status: "error"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "Email já cadastrado ou inválido.", res.Warning)
}

// --- ResolvePostal ---

func TestResolvePostal_Malformed_NoCall(t *testing.T) {
	post := &mockPostal{}
	svc := newTestService(&mockRegistry{}, &mockPartner{}, post)

	res, err := svc.ResolvePostal(context.Background(), "0131")
	require.NoError(t, err)
	assert.Nil(t, res)
	post.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestResolvePostal_Found(t *testing.T) {
	post := &mockPostal{}
	post.On("Lookup", mock.Anything, "01310100").
		Return(&viacep.Address{Street: "Avenida Paulista", District: "Bela Vista", City: "São Paulo", State: "SP"}, nil)
	svc := newTestService(&mockRegistry{}, &mockPartner{}, post)

	res, err := svc.ResolvePostal(context.Background(), "01310-100")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Found)
	assert.Equal(t, "São Paulo", res.Address.City)
}

func TestResolvePostal_NotFound(t *testing.T) {
	post := &mockPostal{}
	post.On("Lookup", mock.Anything, "99999999").
		Return(nil, fmt.Errorf("cep 99999999: %w", domain.ErrNotFound))
	svc := newTestService(&mockRegistry{}, &mockPartner{}, post)

	res, err := svc.ResolvePostal(context.Background(), "99999-999")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Found)
}

func TestResolvePostal_TransportError_Propagates(t *testing.T) {
	post := &mockPostal{}
	post.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))
	svc := newTestService(&mockRegistry{}, &mockPartner{}, post)

	_, err := svc.ResolvePostal(context.Background(), "01310100")
	assert.Error(t, err)
}

// --- CheckCoupon ---

func TestCheckCoupon_Valid(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckCoupon", mock.Anything, "PROMO10").
		Return(&partner.StatusResponse{Status: "success", Msg: "10% de desconto"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckCoupon(context.Background(), "PROMO10")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "10% de desconto", res.Message)
}

func TestCheckCoupon_Invalid(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckCoupon", mock.Anything, mock.Anything).
		Return(&partner.StatusResponse{Status: "error"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckCoupon(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Verifique o código do cupom.", res.Message)
}

// --- CheckCPFExists ---

func TestCheckCPFExists_Exists(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckCPFExists", mock.Anything, "52998224725").
		Return(&partner.ExistsResponse{Exists: true}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckCPFExists(context.Background(), "529.982.247-25")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "CPF já cadastrado. Não é possível realizar o cadastro.", res.Message)
}

func TestCheckCPFExists_ErrorStatus_FailsClosed(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckCPFExists", mock.Anything, mock.Anything).
		Return(&partner.ExistsResponse{Exists: false, Status: "error"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckCPFExists(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.True(t, res.Exists)
}

func TestCheckCPFExists_Free(t *testing.T) {
	p := &mockPartner{}
	p.On("CheckCPFExists", mock.Anything, mock.Anything).
		Return(&partner.ExistsResponse{Exists: false, Status: "success"}, nil)
	svc := newTestService(&mockRegistry{}, p, &mockPostal{})

	res, err := svc.CheckCPFExists(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Empty(t, res.Message)
}

func TestCheckCPFExists_EmptyCPF(t *testing.T) {
	svc := newTestService(&mockRegistry{}, &mockPartner{}, &mockPostal{})
	_, err := svc.CheckCPFExists(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
