package allocator

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockPageProvider is a hand-written stand-in for what cmd/orizon-mockgen
// would have generated for PageProvider; this repo has no compiler-backed
// mock generator of its own, so the generated shape is reproduced by hand
// here — same recorder pattern, same gomock.Controller plumbing.
type MockPageProvider struct {
	ctrl     *gomock.Controller
	recorder *MockPageProviderMockRecorder
}

type MockPageProviderMockRecorder struct {
	mock *MockPageProvider
}

func NewMockPageProvider(ctrl *gomock.Controller) *MockPageProvider {
	m := &MockPageProvider{ctrl: ctrl}
	m.recorder = &MockPageProviderMockRecorder{mock: m}

	return m
}

func (m *MockPageProvider) EXPECT() *MockPageProviderMockRecorder {
	return m.recorder
}

func (m *MockPageProvider) FetchPages(n uintptr) ([]byte, error) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "FetchPages", n)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

func (mr *MockPageProviderMockRecorder) FetchPages(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchPages",
		reflect.TypeOf((*MockPageProvider)(nil).FetchPages), n)
}
