package generator

import (
	"encoding/json"
	"fmt"

	"github.com/kickstart-labs/kickstart/internal/command"
	"github.com/kickstart-labs/kickstart/internal/framework"
)

func init() {
	Register("adonisjs", adonis)
	Register("nextjs", next)
	Register("strapi", strapi)
	Register("react-native", reactNative)
	Register("angular", angular)
	Register("expressjs", express)
	Register("nestjs", nest)
	Register("vuejs", vue)
	Register("nuxtjs", nuxt)
	Register("sailsjs", sails)
}

func kv(key string, v any) command.KV { return command.KV{Key: key, Value: v} }

func adonis(b *command.Builder, _ Input, a *framework.Answers) error {
	b.AliasValues(kv("boilerplate", a.String("boilerplate")), kv("eslint", a.Bool("eslint")))
	// encore and prettier are only asked for web boilerplates and eslint
	// setups respectively.
	for _, key := range []string{"encore", "prettier"} {
		if a.Has(key) {
			b.AliasValues(kv(key, a.Bool(key)))
		}
	}
	return nil
}

func next(b *command.Builder, _ Input, a *framework.Answers) error {
	for _, key := range []string{"tailwind", "eslint", "app", "src-dir"} {
		toggle(b, key, a.Bool(key))
	}
	b.Alias(language(a))
	alias := a.String("import-alias")
	if alias == "" {
		alias = "@/*"
	}
	b.AliasValues(kv("import-alias", alias))
	return nil
}

func strapi(b *command.Builder, _ Input, a *framework.Answers) error {
	if a.Bool(framework.TypeScriptKey) {
		b.Alias("typescript")
	}
	b.Alias("no-run")
	if a.Bool("quick") {
		b.Alias("quickstart")
		return nil
	}

	client := a.String("dbclient")
	if client == "sqlite" {
		b.AliasValues(kv("dbclient", client), kv("dbfile", a.String("dbfile")))
		return nil
	}
	b.AliasValues(
		kv("dbname", a.String("dbname")),
		kv("dbhost", a.String("dbhost")),
		kv("dbport", a.String("dbport")),
		kv("dbusername", a.String("dbusername")),
		kv("dbpassword", a.String("dbpassword")),
		kv("dbssl", a.Bool("dbssl")),
		kv("dbclient", client),
	)
	return nil
}

func reactNative(b *command.Builder, _ Input, a *framework.Answers) error {
	b.AliasValues(kv("install-pods", a.Bool("install-pods")))
	return nil
}

func angular(b *command.Builder, _ Input, a *framework.Answers) error {
	b.AliasValues(kv("routing", a.Bool("routing")), kv("s", a.Bool("s")), kv("t", a.Bool("t")))
	if p := a.String("prefix"); p != "" {
		b.AliasValues(kv("prefix", p))
	}
	if t := a.String("type"); t != "" {
		b.Alias(t)
	}
	b.AliasValues(
		kv("style", a.String("style")),
		kv("skip-tests", !a.Bool("unit-tests")),
		kv("ssr", a.Bool("ssr")),
	)
	return nil
}

func express(b *command.Builder, _ Input, a *framework.Answers) error {
	if a.Bool("needView") {
		b.AliasValues(kv("css", a.String("css")), kv("view", a.String("view")))
	}
	return nil
}

func nest(b *command.Builder, _ Input, a *framework.Answers) error {
	if a.Bool("strict") {
		b.Alias("strict")
	}
	return nil
}

func vue(b *command.Builder, _ Input, a *framework.Answers) error {
	b.Alias(language(a))
	for _, key := range []string{"jsx", "router", "pinia", "eslint", "eslint-with-prettier", "vitest"} {
		if a.Bool(key) {
			b.Alias(key)
		}
	}
	if e2e := a.String("testing-framework"); e2e != "" {
		b.Alias(e2e)
	}
	return nil
}

func nuxt(b *command.Builder, in Input, a *framework.Answers) error {
	out := framework.NewAnswers()
	for _, key := range a.Keys() {
		if key == framework.TypeScriptKey {
			continue
		}
		v, _ := a.Get(key)
		out.Set(key, v)
	}
	out.Set("language", language(a))
	out.Set("pm", in.PackageManager)
	out.Set("name", in.Name)

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	b.AliasValues(kv("answers", string(data)))
	return nil
}

func sails(b *command.Builder, _ Input, a *framework.Answers) error {
	if a.Bool(framework.TypeScriptKey) {
		b.Alias("typescript")
	}
	return nil
}
