package errors

// Predefined localized errors shared across handlers.
var (
	ErrUnauthorized = Unauthorized(Bundle{
		En: "Unauthorized",
		Ar: "غير مصرح",
		Fr: "Non autorisé",
	})
	ErrNotFound = NotFound(Bundle{
		En: "Not Found",
		Ar: "غير موجود",
		Fr: "Introuvable",
	})
	ErrInvalidBody = New(400, ErrCodeInvalidInput, Bundle{
		En: "Invalid request body",
		Ar: "نص الطلب غير صالح",
		Fr: "Corps de requête invalide",
	})
	ErrUnexpected = Unexpected(Bundle{
		En: "Unexpected error",
		Ar: "خطأ غير متوقع",
		Fr: "Erreur inattendue",
	})
)
