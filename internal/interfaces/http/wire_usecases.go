package http

import (
	accountUsecases "github.com/dreamlog-app/dreamlog/internal/application/account/usecases"
	dreamUsecases "github.com/dreamlog-app/dreamlog/internal/application/dream/usecases"
	entitlementUsecases "github.com/dreamlog-app/dreamlog/internal/application/entitlement/usecases"
	insightUsecases "github.com/dreamlog-app/dreamlog/internal/application/insight/usecases"
	paymentUsecases "github.com/dreamlog-app/dreamlog/internal/application/payment/usecases"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Entitlement
	meteredGate        *entitlementUsecases.MeteredGate
	getProfileUC       *entitlementUsecases.GetProfileUseCase
	provisionAccountUC *entitlementUsecases.ProvisionAccountUseCase

	// Payment
	handlePaymentEventUC    *paymentUsecases.HandlePaymentEventUseCase
	reconcileSubscriptionUC *paymentUsecases.ReconcileSubscriptionUseCase
	createCheckoutSessionUC *paymentUsecases.CreateCheckoutSessionUseCase

	// Insight
	generateInsightUC *insightUsecases.GenerateInsightUseCase

	// Dream
	createDreamUC *dreamUsecases.CreateDreamUseCase
	listDreamsUC  *dreamUsecases.ListDreamsUseCase
	getDreamUC    *dreamUsecases.GetDreamUseCase

	// Account
	signupWithDreamUC  *accountUsecases.SignupWithDreamUseCase
	exchangeAuthCodeUC *accountUsecases.ExchangeAuthCodeUseCase
}

// initUseCases builds every use case from the repositories and external clients.
func (c *Container) initUseCases() {
	r := c.repos
	cl := c.clients
	paidPlan := c.cfg.Stripe.PaidPlanName

	ucs := &allUseCases{}

	ucs.meteredGate = entitlementUsecases.NewMeteredGate(r.profileRepo, c.log)
	ucs.getProfileUC = entitlementUsecases.NewGetProfileUseCase(r.profileRepo, r.subscriptionRepo, c.log)
	ucs.provisionAccountUC = entitlementUsecases.NewProvisionAccountUseCase(r.profileRepo, r.subscriptionRepo, r.txManager, c.log)

	ucs.handlePaymentEventUC = paymentUsecases.NewHandlePaymentEventUseCase(
		r.profileRepo, r.subscriptionRepo, cl.paymentGateway, r.txManager, paidPlan, c.log,
	)
	ucs.reconcileSubscriptionUC = paymentUsecases.NewReconcileSubscriptionUseCase(
		r.profileRepo, r.subscriptionRepo, cl.paymentGateway, r.txManager, paidPlan, c.log,
	)
	ucs.createCheckoutSessionUC = paymentUsecases.NewCreateCheckoutSessionUseCase(
		r.subscriptionRepo, cl.paymentGateway, c.cfg.Server.AppURL, c.cfg.Stripe.PriceID, c.log,
	)

	ucs.generateInsightUC = insightUsecases.NewGenerateInsightUseCase(
		ucs.meteredGate, r.dreamRepo, r.insightRepo, cl.analyzer, cl.markdown, c.cfg.Gemini.Timeout, c.log,
	)

	ucs.createDreamUC = dreamUsecases.NewCreateDreamUseCase(r.dreamRepo, cl.markdown, c.log)
	ucs.listDreamsUC = dreamUsecases.NewListDreamsUseCase(r.dreamRepo, c.log)
	ucs.getDreamUC = dreamUsecases.NewGetDreamUseCase(r.dreamRepo, r.insightRepo, cl.markdown, c.log)

	// signup writes before a session exists, so it provisions through the elevated role
	var signupProvisioner accountUsecases.AccountProvisioner
	var signupDreams dream.Repository
	if r.hasElevated() {
		signupProvisioner = entitlementUsecases.NewProvisionAccountUseCase(
			r.elevatedProfileRepo, r.elevatedSubscriptionRepo, r.elevatedTxManager, c.log.Named("elevated"),
		)
		signupDreams = r.elevatedDreamRepo
	}
	ucs.signupWithDreamUC = accountUsecases.NewSignupWithDreamUseCase(
		cl.authProvider, signupProvisioner, signupDreams, cl.markdown, c.log,
	)
	ucs.exchangeAuthCodeUC = accountUsecases.NewExchangeAuthCodeUseCase(cl.authProvider, ucs.provisionAccountUC, c.log)

	c.ucs = ucs
}
