package domain

// Messages returned by Cinescope. Tests compare against them verbatim.
const (
	MsgInvalidLogin      = "Неверный логин или пароль"
	MsgUserExists        = "Пользователь с таким email уже зарегистрирован"
	MsgUserNotFound      = "Пользователь не найден"
	MsgMovieExists       = "Фильм с таким названием уже существует"
	MsgMovieNotFound     = "Фильм не найден"
	MsgGenreNotFound     = "Жанр не найден"
	MsgUnauthorized      = "Unauthorized"
	MsgForbidden         = "Forbidden resource"
	MsgLoggedOut         = "Вы вышли из системы"
	MsgInvalidPayload    = "Некорректное тело запроса"
	MsgInternal          = "Internal server error"
	MsgLocationsEnum     = "Каждое значение в поле locations должно быть одним из значений: MSK, SPB"
	MsgNotFoundMarker    = "не найден"
	MsgPasswordsMismatch = "Пароли не совпадают"
)
