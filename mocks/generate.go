package mocks

//go:generate mockgen -destination=./mock_session.go -package=mocks github.com/rxtech-lab/fxgold/pkg/marketdata/provider Session
