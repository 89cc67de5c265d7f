package middleware

import (
	"encoding/json"
	"errors"
	"log"

	tele "gopkg.in/telebot.v4"
)

// Recover возвращает middleware-функцию, которая перехватывает панику,
// возникшую в обработчике бота, и вызывает заданный обработчик ошибки.
// Если пользователь не передал свою функцию обработки ошибки, используется
// функция по умолчанию, которая логирует сообщение о панике.
func Recover(onError ...func(error, tele.Context)) tele.MiddlewareFunc {
	var handleError func(error, tele.Context)
	if len(onError) > 0 {
		handleError = onError[0]
	} else {
		handleError = func(err error, c tele.Context) {
			log.Printf("Recovered from panic: %v", err)
		}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = errors.New("unknown panic")
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}

// Logger возвращает middleware, которое логирует входящие обновления Telegram.
// Если передан хотя бы один логгер, используется он, иначе log.Default().
func Logger(logger ...*log.Logger) tele.MiddlewareFunc {
	var l *log.Logger
	if len(logger) > 0 {
		l = logger[0]
	} else {
		l = log.Default()
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			l.Println(string(data))
			return next(c)
		}
	}
}
